package command

import (
	"strconv"

	"github.com/agnivade/levenshtein"

	"github.com/ggoodman/slashcmd-go/discord"
)

// suggestDistance is the largest edit distance offered as "did you mean".
const suggestDistance = 2

// Decode turns an interaction's option tree into typed Options. Decoding
// stops at the first mismatch, which is returned as a *DecodeError; no
// partial result is returned with an error.
//
// Value constraints and channel types are enforced by the platform and are
// not checked again here. A referenced entity missing from the resolved
// table is not an error; the entity field is left nil.
func (c *Command) Decode(input discord.CommandInput) (*Options, error) {
	d := decoder{resolved: input.Resolved}
	return d.level(c.root, input.Options)
}

type decoder struct {
	resolved *discord.Resolved
}

func (d *decoder) level(lv *level, opts []discord.InteractionOption) (*Options, error) {
	seen := make(map[string]int, len(opts))
	for i, o := range opts {
		if _, dup := seen[o.Name]; dup {
			return nil, &DecodeError{Code: CodeDuplicateOption, Path: joinPath(lv.path, o.Name)}
		}
		seen[o.Name] = i
	}
	if lv.variants {
		return d.dispatch(lv, opts)
	}
	for _, o := range opts {
		if _, ok := lv.index[o.Name]; !ok {
			return nil, &DecodeError{Code: CodeUnknownOption, Path: joinPath(lv.path, o.Name), Suggestion: lv.suggest(o.Name)}
		}
	}

	out := &Options{path: lv.path, index: lv.index, values: make([]Value, len(lv.fields))}
	for i := range lv.fields {
		f := &lv.fields[i]
		j, ok := seen[f.Name]
		if !ok {
			if !f.Optional {
				return nil, &DecodeError{Code: CodeMissingRequired, Path: joinPath(lv.path, f.Name), Expected: f.wire}
			}
			out.values[i] = Value{Name: f.Name, Kind: f.Kind}
			continue
		}
		v, err := d.value(joinPath(lv.path, f.Name), f, opts[j].Value)
		if err != nil {
			return nil, err
		}
		out.values[i] = v
	}
	return out, nil
}

// dispatch decodes a level whose fields are subcommands or groups. Exactly
// one of them must be selected.
func (d *decoder) dispatch(lv *level, opts []discord.InteractionOption) (*Options, error) {
	switch len(opts) {
	case 0:
		return nil, &DecodeError{Code: CodeNoSubcommand, Path: lv.path}
	case 1:
	default:
		return nil, &DecodeError{Code: CodeAmbiguousSubcommand, Path: lv.path, Value: opts[0].Name + ", " + opts[1].Name}
	}
	sel := opts[0]
	i, ok := lv.index[sel.Name]
	if !ok {
		return nil, &DecodeError{Code: CodeUnknownSubcommand, Path: joinPath(lv.path, sel.Name), Suggestion: lv.suggest(sel.Name)}
	}
	f := &lv.fields[i]
	nested, err := subOptions(joinPath(lv.path, f.Name), f.wire, sel.Value)
	if err != nil {
		return nil, err
	}
	child, err := d.level(f.child, nested)
	if err != nil {
		return nil, err
	}
	return &Options{path: lv.path, branches: lv.index, selected: f.Name, kind: f.Kind, sub: child}, nil
}

// subOptions unwraps the nested options of a subcommand or group value,
// checking that the wire type matches the declared one.
func subOptions(path []string, want discord.OptionType, raw discord.OptionValue) ([]discord.InteractionOption, error) {
	switch v := raw.(type) {
	case discord.SubCommandValue:
		if want == discord.OptionTypeSubCommand {
			return v, nil
		}
	case discord.SubCommandGroupValue:
		if want == discord.OptionTypeSubCommandGroup {
			return v, nil
		}
	}
	return nil, mismatch(path, want, raw)
}

func (d *decoder) value(path []string, f *compiledField, raw discord.OptionValue) (Value, error) {
	if fv, ok := raw.(discord.FocusedValue); ok {
		return Value{}, &DecodeError{Code: CodeUnexpectedFocus, Path: path, Value: strconv.Quote(fv.Text)}
	}
	if raw == nil || raw.Type() != f.wire {
		return Value{}, mismatch(path, f.wire, raw)
	}
	v := Value{Name: f.Name, Kind: f.Kind, Set: true}
	var lit Literal
	switch x := raw.(type) {
	case discord.StringValue:
		v.Str = string(x)
		lit = StringLit(v.Str)
	case discord.IntegerValue:
		v.Int = int64(x)
		lit = IntLit(v.Int)
	case discord.NumberValue:
		v.Float = float64(x)
		lit = NumberLit(v.Float)
	case discord.BooleanValue:
		v.Bool = bool(x)
	default:
		id, _ := discord.IDOf(raw)
		v.ID = id
		d.resolve(&v)
	}
	if f.Kind == KindChoice {
		variant, ok := f.Enum.FromLiteral(lit)
		if !ok {
			return Value{}, &DecodeError{Code: CodeUnknownChoice, Path: path, Value: lit.String()}
		}
		v.Variant = &variant
	}
	return v, nil
}

// resolve attaches the resolved entity for an id-carrying value.
func (d *decoder) resolve(v *Value) {
	switch v.Kind {
	case KindUser:
		v.User, v.Member, _ = d.resolved.User(v.ID)
	case KindChannel:
		v.Channel, _ = d.resolved.Channel(v.ID)
	case KindRole:
		v.Role, _ = d.resolved.Role(v.ID)
	case KindMentionable:
		if u, m, ok := d.resolved.User(v.ID); ok {
			v.User, v.Member = u, m
		} else {
			v.Role, _ = d.resolved.Role(v.ID)
		}
	case KindAttachment:
		v.Attachment, _ = d.resolved.Attachment(v.ID)
	}
}

func mismatch(path []string, want discord.OptionType, raw discord.OptionValue) *DecodeError {
	e := &DecodeError{Code: CodeTypeMismatch, Path: path, Expected: want}
	if raw != nil {
		e.Got = raw.Type()
	}
	return e
}

// suggest returns the declared name closest to name, if it is close enough.
func (lv *level) suggest(name string) string {
	best, bestDist := "", suggestDistance+1
	for i := range lv.fields {
		cand := lv.fields[i].Name
		if dist := levenshtein.ComputeDistance(name, cand); dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}
