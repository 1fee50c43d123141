package spec

// Action describes the direction of an operation.
type Action string

// Operation action constants.
const (
	ActionSend    Action = "send"
	ActionReceive Action = "receive"
)

// SchemaType values permitted for SchemaSpec.Type and PropertySpec.Type.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeNull    = "null"
)

// Security scheme types.
const (
	SecurityAPIKey        = "apiKey"
	SecurityHTTP          = "http"
	SecurityOAuth2        = "oauth2"
	SecurityOpenIDConnect = "openIdConnect"
	SecurityPlain         = "plain"
	SecurityScramSha256   = "scramSha256"
	SecurityScramSha512   = "scramSha512"
	SecurityGSSAPI        = "gssapi"
)

// API key locations.
const (
	LocationQuery  = "query"
	LocationHeader = "header"
	LocationCookie = "cookie"
)

// Document is the root of a parsed event-API specification.
type Document struct {
	Info       InfoSpec        `koanf:"info"`
	Channels   []ChannelSpec   `koanf:"channels"`
	Operations []OperationSpec `koanf:"operations"`
	Components ComponentsSpec  `koanf:"components"`
}

// InfoSpec carries API metadata. Static boilerplate generation is a pure
// function of these fields and nothing else.
type InfoSpec struct {
	Title       string `koanf:"title"`
	Version     string `koanf:"version"`
	Description string `koanf:"description"`
}

// ChannelSpec describes a named message channel. The address may contain
// {param} placeholders, each of which must be declared in Parameters.
type ChannelSpec struct {
	Address     string          `koanf:"address"`
	Description string          `koanf:"description"`
	Parameters  []ParameterSpec `koanf:"parameters"`
	// Operations lists operation ids bound to this channel.
	Operations []string `koanf:"operations"`
}

// ParameterSpec declares a channel address parameter.
type ParameterSpec struct {
	Name        string `koanf:"name"`
	Description string `koanf:"description"`
}

// MessageSpec describes a message carried on a channel. Payload is required;
// Headers is optional (a missing ref is valid for headers only).
type MessageSpec struct {
	Name        string    `koanf:"name"`
	ContentType string    `koanf:"content_type"`
	Payload     SchemaRef `koanf:"payload"`
	Headers     SchemaRef `koanf:"headers"`
}

// SchemaSpec describes a named (or inline) data schema.
type SchemaSpec struct {
	Name       string         `koanf:"name"`
	Type       string         `koanf:"type"`
	Format     string         `koanf:"format"`
	Properties []PropertySpec `koanf:"properties"`
	Items      *SchemaSpec    `koanf:"items"`
	Required   []string       `koanf:"required"`
	Minimum    *float64       `koanf:"min"`
	Maximum    *float64       `koanf:"max"`
	MinLength  *int           `koanf:"min_length"`
	MaxLength  *int           `koanf:"max_length"`
}

// PropertySpec describes one property of an object schema. Declaration order
// is significant: IDL field ordinals follow it.
type PropertySpec struct {
	Name      string   `koanf:"name"`
	Type      string   `koanf:"type"`
	Format    string   `koanf:"format"`
	Minimum   *float64 `koanf:"min"`
	Maximum   *float64 `koanf:"max"`
	MinLength *int     `koanf:"min_length"`
	MaxLength *int     `koanf:"max_length"`
}

// SecuritySchemeSpec describes an authentication mechanism. Which fields are
// required depends on Type; see the validator's security checks.
type SecuritySchemeSpec struct {
	Name        string `koanf:"name"`
	Type        string `koanf:"type"`
	Description string `koanf:"description"`

	// apiKey
	FieldName string `koanf:"name_field"`
	Location  string `koanf:"location"`

	// http
	Scheme string `koanf:"scheme"`

	// oauth2
	Flows *OAuthFlowsSpec `koanf:"flows"`

	// openIdConnect
	OpenIDConnectURL string `koanf:"open_id_connect_url"`
}

// OAuthFlowsSpec holds up to four named OAuth2 flows. At least one must be
// declared on an oauth2 scheme.
type OAuthFlowsSpec struct {
	Implicit          *OAuthFlowSpec `koanf:"implicit"`
	Password          *OAuthFlowSpec `koanf:"password"`
	ClientCredentials *OAuthFlowSpec `koanf:"client_credentials"`
	AuthorizationCode *OAuthFlowSpec `koanf:"authorization_code"`
}

// OAuthFlowSpec describes a single OAuth2 flow.
type OAuthFlowSpec struct {
	AuthorizationURL string            `koanf:"authorization_url"`
	TokenURL         string            `koanf:"token_url"`
	RefreshURL       string            `koanf:"refresh_url"`
	Scopes           map[string]string `koanf:"scopes"`
}

// OperationSpec binds an action to a channel and a set of messages.
type OperationSpec struct {
	ID       string     `koanf:"operation_id"`
	Action   Action     `koanf:"action"`
	Channel  string     `koanf:"channel"`
	Messages []string   `koanf:"messages"`
	Reply    *ReplySpec `koanf:"reply"`
}

// ReplySpec describes the reply side of a request-reply operation. Either
// Channel (a declared channel's address) or Address (a literal reply address,
// not resolved against declared channels) must be set.
type ReplySpec struct {
	Channel  string   `koanf:"channel"`
	Address  string   `koanf:"address"`
	Messages []string `koanf:"messages"`
}

// ComponentsSpec aggregates the reusable entities of the document.
type ComponentsSpec struct {
	Messages        []MessageSpec        `koanf:"messages"`
	Schemas         []SchemaSpec         `koanf:"schemas"`
	SecuritySchemes []SecuritySchemeSpec `koanf:"security_schemes"`
}

// FindChannel returns the channel with the given address, or nil.
func (d *Document) FindChannel(address string) *ChannelSpec {
	for i := range d.Channels {
		if d.Channels[i].Address == address {
			return &d.Channels[i]
		}
	}
	return nil
}

// FindOperation returns the operation with the given id, or nil.
func (d *Document) FindOperation(id string) *OperationSpec {
	for i := range d.Operations {
		if d.Operations[i].ID == id {
			return &d.Operations[i]
		}
	}
	return nil
}

// FindMessage returns the component message with the given name, or nil.
func (c *ComponentsSpec) FindMessage(name string) *MessageSpec {
	for i := range c.Messages {
		if c.Messages[i].Name == name {
			return &c.Messages[i]
		}
	}
	return nil
}

// FindSchema returns the component schema with the given name, or nil.
func (c *ComponentsSpec) FindSchema(name string) *SchemaSpec {
	for i := range c.Schemas {
		if c.Schemas[i].Name == name {
			return &c.Schemas[i]
		}
	}
	return nil
}

// SendOperations returns the operations with action "send", in declaration
// order. Client generators emit one publish method per entry.
func (d *Document) SendOperations() []OperationSpec {
	var out []OperationSpec
	for _, op := range d.Operations {
		if op.Action == ActionSend {
			out = append(out, op)
		}
	}
	return out
}
