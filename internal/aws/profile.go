package aws

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Profile is a named profile of the shared AWS config or credentials file.
type Profile struct {
	Name   string
	Region string // from config file if set
	Source string // "credentials" or "config"
}

var (
	sectionRe       = regexp.MustCompile(`^\[([^\]]+)\]$`)
	configProfileRe = regexp.MustCompile(`^profile\s+(.+)$`)
	regionRe        = regexp.MustCompile(`^region\s*=\s*(.+)$`)
)

// ListProfiles reads the profiles of the shared credentials and config
// files. AWS_SHARED_CREDENTIALS_FILE and AWS_CONFIG_FILE are honoured.
// Missing files are skipped.
func ListProfiles() ([]Profile, error) {
	byName := make(map[string]*Profile)

	credPath, configPath, err := sharedFiles()
	if err != nil {
		return nil, err
	}

	if creds, err := parseINIFile(credPath, "credentials", false); err == nil {
		for _, p := range creds {
			byName[p.Name] = &p
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if configs, err := parseINIFile(configPath, "config", true); err == nil {
		for _, p := range configs {
			if existing, ok := byName[p.Name]; ok {
				if existing.Region == "" {
					existing.Region = p.Region
				}
				continue
			}
			byName[p.Name] = &p
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	profiles := make([]Profile, 0, len(byName))
	for _, p := range byName {
		profiles = append(profiles, *p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		// Put "default" first, then sort alphabetically
		if profiles[i].Name == "default" {
			return true
		}
		if profiles[j].Name == "default" {
			return false
		}
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, nil
}

// FindProfile returns the named profile, if it is configured.
func FindProfile(name string) (*Profile, bool) {
	profiles, err := ListProfiles()
	if err != nil {
		return nil, false
	}
	for _, p := range profiles {
		if p.Name == name {
			return &p, true
		}
	}
	return nil, false
}

func sharedFiles() (credentials, config string, err error) {
	credentials = os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	config = os.Getenv("AWS_CONFIG_FILE")
	if credentials != "" && config != "" {
		return credentials, config, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", err
	}
	if credentials == "" {
		credentials = filepath.Join(home, ".aws", "credentials")
	}
	if config == "" {
		config = filepath.Join(home, ".aws", "config")
	}
	return credentials, config, nil
}

// parseINIFile parses an AWS INI-style file. In the config file profiles
// are "[profile name]" sections plus "[default]"; other sections such as
// sso-session are skipped.
func parseINIFile(path, source string, isConfigFile bool) ([]Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var profiles []Profile
	var current *Profile

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if m := sectionRe.FindStringSubmatch(line); len(m) == 2 {
			if current != nil {
				profiles = append(profiles, *current)
				current = nil
			}
			name := strings.TrimSpace(m[1])
			if isConfigFile && name != "default" {
				pm := configProfileRe.FindStringSubmatch(name)
				if len(pm) != 2 {
					continue
				}
				name = strings.TrimSpace(pm[1])
			}
			current = &Profile{Name: name, Source: source}
			continue
		}

		if current != nil {
			if m := regionRe.FindStringSubmatch(line); len(m) == 2 {
				current.Region = strings.TrimSpace(m[1])
			}
		}
	}

	if current != nil {
		profiles = append(profiles, *current)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
