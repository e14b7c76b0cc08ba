package discord

// Resolved is the side table of entities referenced by id in an option tree.
type Resolved struct {
	Users       map[Snowflake]User               `json:"users,omitempty"`
	Members     map[Snowflake]Member             `json:"members,omitempty"`
	Roles       map[Snowflake]Role               `json:"roles,omitempty"`
	Channels    map[Snowflake]InteractionChannel `json:"channels,omitempty"`
	Attachments map[Snowflake]Attachment         `json:"attachments,omitempty"`
}

// User is a platform user.
type User struct {
	ID            Snowflake `json:"id"`
	Username      string    `json:"username"`
	GlobalName    string    `json:"global_name,omitempty"`
	Discriminator string    `json:"discriminator,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
	Bot           bool      `json:"bot,omitempty"`
}

// Member is the partial guild member delivered with resolved users.
type Member struct {
	Nick        string      `json:"nick,omitempty"`
	Roles       []Snowflake `json:"roles,omitempty"`
	JoinedAt    string      `json:"joined_at,omitempty"`
	Permissions Permissions `json:"permissions,omitzero"`
}

// Role is a guild role.
type Role struct {
	ID          Snowflake   `json:"id"`
	Name        string      `json:"name"`
	Color       int         `json:"color,omitempty"`
	Position    int         `json:"position,omitempty"`
	Permissions Permissions `json:"permissions,omitzero"`
	Mentionable bool        `json:"mentionable,omitempty"`
}

// InteractionChannel is the partial channel delivered with interactions.
type InteractionChannel struct {
	ID          Snowflake   `json:"id"`
	Name        string      `json:"name"`
	Type        ChannelType `json:"type"`
	ParentID    Snowflake   `json:"parent_id,omitzero"`
	Permissions Permissions `json:"permissions,omitzero"`
}

// Attachment is an uploaded file.
type Attachment struct {
	ID          Snowflake `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int       `json:"size"`
	URL         string    `json:"url"`
	ProxyURL    string    `json:"proxy_url,omitempty"`
}

// User looks up a resolved user and, when present, its guild member.
func (r *Resolved) User(id Snowflake) (*User, *Member, bool) {
	if r == nil {
		return nil, nil, false
	}
	u, ok := r.Users[id]
	if !ok {
		return nil, nil, false
	}
	var member *Member
	if m, ok := r.Members[id]; ok {
		member = &m
	}
	return &u, member, true
}

// Role looks up a resolved role.
func (r *Resolved) Role(id Snowflake) (*Role, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.Roles[id]
	if !ok {
		return nil, false
	}
	return &v, true
}

// Channel looks up a resolved channel.
func (r *Resolved) Channel(id Snowflake) (*InteractionChannel, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.Channels[id]
	if !ok {
		return nil, false
	}
	return &v, true
}

// Attachment looks up a resolved attachment.
func (r *Resolved) Attachment(id Snowflake) (*Attachment, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.Attachments[id]
	if !ok {
		return nil, false
	}
	return &v, true
}
