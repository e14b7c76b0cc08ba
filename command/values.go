package command

import (
	"slices"

	"github.com/ggoodman/slashcmd-go/discord"
)

// Value is one decoded option. Which payload fields are populated depends
// on Kind; Set is false for an absent optional option.
type Value struct {
	Name  string
	Kind  Kind
	Set   bool
	Str   string
	Int   int64
	Float float64
	Bool  bool
	// ID is the entity id of user, channel, role, mentionable, attachment
	// and id options.
	ID discord.Snowflake
	// Variant is the selected member of a choice option.
	Variant *Variant

	// Resolved entities. They stay nil when the interaction did not carry
	// the entity in its resolved table.
	User       *discord.User
	Member     *discord.Member
	Role       *discord.Role
	Channel    *discord.InteractionChannel
	Attachment *discord.Attachment
}

// Options is the typed result of decoding one level of a command. At a
// dispatching level it records the selected subcommand instead of values.
type Options struct {
	path   []string
	index  map[string]int
	values []Value

	// branches indexes the declared subcommands of a dispatching level.
	branches map[string]int
	selected string
	kind     Kind
	sub      *Options
}

// Path returns the command path of this level, root command first.
func (o *Options) Path() []string { return slices.Clone(o.path) }

// Subcommand returns the selected subcommand or group at a dispatching
// level.
func (o *Options) Subcommand() (name string, opts *Options, ok bool) {
	if o.sub == nil {
		return "", nil, false
	}
	return o.selected, o.sub, true
}

// SelectedGroup reports whether the selected branch is a subcommand group.
func (o *Options) SelectedGroup() bool { return o.kind == KindSubCommandGroup }

// Route lists the selected subcommand names below this level, outermost
// first. It is empty for a leaf command.
func (o *Options) Route() []string {
	var route []string
	for cur := o; cur.sub != nil; cur = cur.sub {
		route = append(route, cur.selected)
	}
	return route
}

// Leaf follows the selected subcommands down to the level that holds the
// option values.
func (o *Options) Leaf() *Options {
	cur := o
	for cur.sub != nil {
		cur = cur.sub
	}
	return cur
}

// Values returns every declared option of this level in declaration order,
// including unset optional ones.
func (o *Options) Values() []Value { return slices.Clone(o.values) }

// Get returns the named value. ok is false when the option is not declared
// at this level or was not supplied.
func (o *Options) Get(name string) (Value, bool) {
	i, found := o.index[name]
	if !found || !o.values[i].Set {
		return Value{}, false
	}
	return o.values[i], true
}

// Has reports whether the named option was supplied.
func (o *Options) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

func (o *Options) String(name string) (string, bool) {
	v, ok := o.Get(name)
	if !ok || v.Kind != KindString && !(v.Kind == KindChoice && v.Variant.Value.Kind() == LiteralString) {
		return "", false
	}
	return v.Str, true
}

func (o *Options) Integer(name string) (int64, bool) {
	v, ok := o.Get(name)
	if !ok || v.Kind != KindInteger && !(v.Kind == KindChoice && v.Variant.Value.Kind() == LiteralInteger) {
		return 0, false
	}
	return v.Int, true
}

func (o *Options) Number(name string) (float64, bool) {
	v, ok := o.Get(name)
	if !ok || v.Kind != KindNumber && !(v.Kind == KindChoice && v.Variant.Value.Kind() == LiteralNumber) {
		return 0, false
	}
	return v.Float, true
}

func (o *Options) Bool(name string) (bool, bool) {
	v, ok := o.Get(name)
	if !ok || v.Kind != KindBoolean {
		return false, false
	}
	return v.Bool, true
}

// ID returns the entity id of any id-carrying option.
func (o *Options) ID(name string) (discord.Snowflake, bool) {
	v, ok := o.Get(name)
	if !ok || !carriesID(v.Kind) {
		return 0, false
	}
	return v.ID, true
}

// Choice returns the selected variant of a choice option.
func (o *Options) Choice(name string) (Variant, bool) {
	v, ok := o.Get(name)
	if !ok || v.Variant == nil {
		return Variant{}, false
	}
	return *v.Variant, true
}

func carriesID(k Kind) bool {
	switch k {
	case KindUser, KindChannel, KindRole, KindMentionable, KindAttachment, KindID:
		return true
	}
	return false
}

// Interface returns the payload of v as a plain Go value: the Key of a
// choice, the id of an entity option, nil when unset.
func (v Value) Interface() any {
	switch {
	case !v.Set:
		return nil
	case v.Kind == KindChoice && v.Variant != nil:
		return v.Variant.Key
	case carriesID(v.Kind):
		return v.ID
	}
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInteger:
		return v.Int
	case KindNumber:
		return v.Float
	case KindBoolean:
		return v.Bool
	}
	return nil
}
