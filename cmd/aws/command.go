package aws

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vietdv277/stratus/internal/operation"
)

// runFunc executes an operation with the arguments collected from the
// command line.
type runFunc func(cmd *cobra.Command, d *operation.OperationDescriptor, args operation.Args) error

// Flags shared by every operation command.
const (
	flagSelect          = "select"
	flagPassThru        = "pass-thru"
	flagForce           = "force"
	flagNull            = "null"
	flagNextToken       = "next-token"
	flagNoAutoIteration = "no-auto-iteration"
	flagMaxItems        = "max-items"
	flagPageSize        = "page-size"
)

// newOperationCommand builds the command of one catalog operation. Every
// parameter becomes a flag named after it; positional parameters may also be
// given as arguments.
func newOperationCommand(d *operation.OperationDescriptor, run runFunc) *cobra.Command {
	positional := d.Positional()

	cmd := &cobra.Command{
		Use:   usageLine(d, positional),
		Short: d.Summary,
		Long:  longHelp(d),
		Args:  cobra.MaximumNArgs(len(positional)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opArgs, err := collectArgs(cmd, d, args)
			if err != nil {
				return err
			}
			return run(cmd, d, opArgs)
		},
	}
	if d.Mutating {
		cmd.Annotations = map[string]string{"mutating": "true"}
	}

	flags := cmd.Flags()
	aliases := make(map[string]string)
	for _, p := range d.Params {
		name := flagName(p.Name)
		usage := paramUsage(p)
		switch p.Type {
		case operation.Int32:
			flags.Int32(name, 0, usage)
		case operation.Int64:
			flags.Int64(name, 0, usage)
		case operation.Float:
			flags.Float64(name, 0, usage)
		case operation.Bool:
			flags.Bool(name, false, usage)
		case operation.StringList:
			flags.StringSlice(name, nil, usage)
		case operation.StringMap:
			flags.StringToString(name, nil, usage)
		default:
			flags.String(name, "", usage)
		}
		if p.Alias != "" {
			aliases[flagName(p.Alias)] = name
		}
		if values := enumValues(d, p); len(values) > 0 {
			_ = cmd.RegisterFlagCompletionFunc(name, fixedCompletions(values))
		}
	}
	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if canonical, ok := aliases[name]; ok {
			return pflag.NormalizedName(canonical)
		}
		return pflag.NormalizedName(name)
	})

	flags.String(flagSelect, "", `what to output: "*" for the whole response, a response field, or ^Parameter`)
	flags.StringSlice(flagNull, nil, "parameters to send as explicit null")
	if d.Identifier != "" {
		flags.Bool(flagPassThru, false, fmt.Sprintf("output the %s parameter instead of the response", d.Identifier))
	}
	if d.Mutating {
		flags.Bool(flagForce, false, "do not ask for confirmation")
	}
	if d.Paging != nil {
		flags.String(flagNextToken, "", "continuation token of the page to fetch")
		flags.Bool(flagNoAutoIteration, false, "fetch a single page")
		flags.Int(flagMaxItems, 0, "stop after this many items")
		flags.Int(flagPageSize, 0, fmt.Sprintf("items per call (at most %d)", d.Paging.MaxPageSize))
	}

	if len(positional) > 0 {
		cmd.ValidArgsFunction = positionalCompletion(d, positional)
	}
	return cmd
}

// collectArgs reads the flags the user set, and the positional arguments,
// into operation arguments. Flags left at their defaults are not passed on.
func collectArgs(cmd *cobra.Command, d *operation.OperationDescriptor, args []string) (operation.Args, error) {
	flags := cmd.Flags()
	out := operation.Args{Values: make(map[string]any)}

	positional := d.Positional()
	for i, arg := range args {
		p := positional[i]
		name := flagName(p.Name)
		if flags.Changed(name) {
			return out, fmt.Errorf("%s given both as argument and as --%s", p.Name, name)
		}
		if err := flags.Set(name, arg); err != nil {
			return out, fmt.Errorf("invalid value %q for %s: %w", arg, p.Name, err)
		}
	}

	for _, p := range d.Params {
		name := flagName(p.Name)
		if !flags.Changed(name) {
			continue
		}
		v, err := flagValue(flags, name, p.Type)
		if err != nil {
			return out, err
		}
		out.Values[p.Name] = v
	}

	nulls, _ := flags.GetStringSlice(flagNull)
	for _, n := range nulls {
		p, ok := d.Param(n)
		if !ok {
			return out, fmt.Errorf("--%s: %s is not a parameter of %s", flagNull, n, d.Command())
		}
		if _, set := out.Values[p.Name]; set {
			return out, fmt.Errorf("--%s: %s also has a value", flagNull, p.Name)
		}
		out.Values[p.Name] = nil
	}

	out.Select, _ = flags.GetString(flagSelect)
	if d.Identifier != "" {
		out.PassThru, _ = flags.GetBool(flagPassThru)
	}
	if d.Mutating {
		out.Force, _ = flags.GetBool(flagForce)
	}
	if d.Paging != nil {
		out.NextToken, _ = flags.GetString(flagNextToken)
		out.NoAutoIteration, _ = flags.GetBool(flagNoAutoIteration)
		out.MaxItems, _ = flags.GetInt(flagMaxItems)
		out.PageSize, _ = flags.GetInt(flagPageSize)
	}
	return out, nil
}

func flagValue(flags *pflag.FlagSet, name string, t operation.ParamType) (any, error) {
	switch t {
	case operation.Int32:
		return flags.GetInt32(name)
	case operation.Int64:
		return flags.GetInt64(name)
	case operation.Float:
		return flags.GetFloat64(name)
	case operation.Bool:
		return flags.GetBool(name)
	case operation.StringList:
		return flags.GetStringSlice(name)
	case operation.StringMap:
		return flags.GetStringToString(name)
	default:
		return flags.GetString(name)
	}
}

// flagName returns the flag of a parameter, e.g. "--ml-model-id".
func flagName(param string) string {
	return operation.Kebab(param)
}

func usageLine(d *operation.OperationDescriptor, positional []operation.ParameterSpec) string {
	var sb strings.Builder
	sb.WriteString(d.Command())
	for _, p := range positional {
		if p.Required {
			sb.WriteString(" <" + p.Name + ">")
		} else {
			sb.WriteString(" [" + p.Name + "]")
		}
	}
	return sb.String()
}

func paramUsage(p operation.ParameterSpec) string {
	usage := p.Usage
	if usage == "" {
		usage = p.Name
	}
	var notes []string
	if p.Required {
		notes = append(notes, "required")
	}
	if p.Type == operation.Document {
		notes = append(notes, "JSON")
	}
	if p.Alias != "" {
		notes = append(notes, "alias --"+flagName(p.Alias))
	}
	if len(notes) > 0 {
		usage += " (" + strings.Join(notes, ", ") + ")"
	}
	return usage
}

func longHelp(d *operation.OperationDescriptor) string {
	var sb strings.Builder
	sb.WriteString(d.Summary)
	sb.WriteString("\n\nCalls the " + d.Name + " API.")
	if d.Mutating {
		sb.WriteString(" Asks for confirmation unless --force is given.")
	}
	if d.Paging != nil {
		sb.WriteString(" Results are fetched page by page.")
	}
	if d.Select != "" && d.Select != "*" {
		sb.WriteString("\nOutputs the " + d.Select + " field by default; use --select '*' for the whole response.")
	}
	return sb.String()
}

// enumValues returns the allowed values of a parameter whose request field
// is an SDK enum type.
func enumValues(d *operation.OperationDescriptor, p operation.ParameterSpec) []string {
	if p.Type != operation.String {
		return nil
	}
	t, ok := d.FieldType(p)
	if !ok {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.String {
		return nil
	}
	m, ok := t.MethodByName("Values")
	if !ok || m.Type.NumIn() != 1 || m.Type.NumOut() != 1 || m.Type.Out(0).Kind() != reflect.Slice {
		return nil
	}

	res := m.Func.Call([]reflect.Value{reflect.Zero(t)})[0]
	values := make([]string, 0, res.Len())
	for i := 0; i < res.Len(); i++ {
		if e := res.Index(i); e.Kind() == reflect.String {
			values = append(values, e.String())
		}
	}
	return values
}

func fixedCompletions(values []string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func positionalCompletion(d *operation.OperationDescriptor, positional []operation.ParameterSpec) cobra.CompletionFunc {
	return func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) < len(positional) {
			if values := enumValues(d, positional[len(args)]); len(values) > 0 {
				return values, cobra.ShellCompDirectiveNoFileComp
			}
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}
