package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventline-labs/eventc/pkg/spec"
)

// orderDoc returns a minimal fully-resolvable document: one channel, one
// message, one schema, one send operation.
func orderDoc() *spec.Document {
	return &spec.Document{
		Info: spec.InfoSpec{Title: "Orders", Version: "1.0.0"},
		Channels: []spec.ChannelSpec{
			{Address: "orders/created"},
		},
		Operations: []spec.OperationSpec{
			{
				ID:       "publish_order_created",
				Action:   spec.ActionSend,
				Channel:  "orders/created",
				Messages: []string{"order_created_event"},
			},
		},
		Components: spec.ComponentsSpec{
			Messages: []spec.MessageSpec{
				{
					Name:        "order_created_event",
					ContentType: "application/json",
					Payload:     spec.ByName("OrderEventSchema"),
				},
			},
			Schemas: []spec.SchemaSpec{
				{
					Name: "OrderEventSchema",
					Type: spec.TypeObject,
					Properties: []spec.PropertySpec{
						{Name: "id", Type: spec.TypeString},
						{Name: "total", Type: spec.TypeNumber},
					},
					Required: []string{"id"},
				},
			},
		},
	}
}

func TestValidate_ResolvableDocument(t *testing.T) {
	v, err := Validate(orderDoc())
	require.NoError(t, err)
	assert.NotNil(t, v.Document())
}

func TestValidate_DuplicateChannelAddress(t *testing.T) {
	doc := orderDoc()
	doc.Channels = append(doc.Channels, spec.ChannelSpec{Address: "orders/created"})

	_, err := Validate(doc)
	require.Error(t, err)

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "channel", refErr.Entity)
	assert.Equal(t, "orders/created", refErr.Name)
	assert.Contains(t, refErr.Error(), "duplicate")
}

func TestValidate_DuplicateReportedDeterministically(t *testing.T) {
	doc := orderDoc()
	doc.Channels = append(doc.Channels,
		spec.ChannelSpec{Address: "orders/created"},
		spec.ChannelSpec{Address: "orders/created"},
	)

	for range 5 {
		_, err := Validate(doc)
		var refErr *ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, "orders/created", refErr.Name)
	}
}

func TestValidate_UndeclaredChannelParameter(t *testing.T) {
	doc := orderDoc()
	doc.Channels[0].Address = "users/{userId}/notify"
	doc.Operations[0].Channel = "users/{userId}/notify"

	_, err := Validate(doc)
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Contains(t, refErr.Error(), "userId")

	// Fix-and-retry is idempotent: declaring the parameter makes it pass.
	// The snake_case form satisfies the camelCase placeholder.
	doc.Channels[0].Parameters = []spec.ParameterSpec{{Name: "user_id"}}
	_, err = Validate(doc)
	assert.NoError(t, err)
}

func TestValidate_ChannelOperationResolution(t *testing.T) {
	doc := orderDoc()
	doc.Channels[0].Operations = []string{"publish_order_created"}
	_, err := Validate(doc)
	require.NoError(t, err)

	doc.Channels[0].Operations = []string{"no_such_operation"}
	_, err = Validate(doc)
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Contains(t, refErr.Error(), "no_such_operation")
}

func TestValidate_DuplicateMessageName(t *testing.T) {
	doc := orderDoc()
	doc.Components.Messages = append(doc.Components.Messages, doc.Components.Messages[0])

	_, err := Validate(doc)
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "message", refErr.Entity)
}

func TestValidate_MissingPayload(t *testing.T) {
	doc := orderDoc()
	doc.Components.Messages[0].Payload = spec.SchemaRef{}

	_, err := Validate(doc)
	var constraintErr *SchemaConstraintError
	require.ErrorAs(t, err, &constraintErr)
	assert.Contains(t, constraintErr.Error(), "payload is required")
}

func TestValidate_PayloadReferenceUnresolved(t *testing.T) {
	doc := orderDoc()
	doc.Components.Messages[0].Payload = spec.ByName("NoSuchSchema")

	_, err := Validate(doc)
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Contains(t, refErr.Error(), "NoSuchSchema")
}

func TestValidate_InlinePayloadWithoutType(t *testing.T) {
	doc := orderDoc()
	doc.Components.Messages[0].Payload = spec.InlineRef(&spec.SchemaSpec{})

	_, err := Validate(doc)
	var constraintErr *SchemaConstraintError
	require.ErrorAs(t, err, &constraintErr)
	assert.Contains(t, constraintErr.Error(), "declare a type")
}

func TestValidate_HeadersOptional(t *testing.T) {
	doc := orderDoc()
	doc.Components.Messages[0].Headers = spec.SchemaRef{}
	_, err := Validate(doc)
	assert.NoError(t, err)
}

func TestValidate_ContentType(t *testing.T) {
	doc := orderDoc()
	doc.Components.Messages[0].ContentType = "not-a-mime-type"
	_, err := Validate(doc)
	require.Error(t, err)

	doc.Components.Messages[0].ContentType = "application/vnd.custom+json"
	_, err = Validate(doc)
	assert.NoError(t, err, "anything with a slash is accepted")
}

func TestValidate_UnresolvedOperationChannel(t *testing.T) {
	doc := orderDoc()
	doc.Operations[0].Channel = "orders/deleted"

	_, err := Validate(doc)
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "publish_order_created", refErr.Name)
	assert.Contains(t, refErr.Error(), "orders/deleted")
}

func TestValidate_DuplicateOperationID(t *testing.T) {
	doc := orderDoc()
	doc.Operations = append(doc.Operations, doc.Operations[0])

	_, err := Validate(doc)
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "operation", refErr.Entity)
}

func TestValidate_Reply(t *testing.T) {
	doc := orderDoc()
	doc.Operations[0].Reply = &spec.ReplySpec{}
	_, err := Validate(doc)
	require.Error(t, err, "reply needs a channel or an address")

	doc.Operations[0].Reply = &spec.ReplySpec{Address: "orders/replies"}
	_, err = Validate(doc)
	assert.NoError(t, err, "literal reply address is not resolved")

	doc.Operations[0].Reply = &spec.ReplySpec{Channel: "no/such/channel"}
	_, err = Validate(doc)
	require.Error(t, err)

	doc.Operations[0].Reply = &spec.ReplySpec{
		Channel:  "orders/created",
		Messages: []string{"order_created_event"},
	}
	_, err = Validate(doc)
	assert.NoError(t, err)
}

func TestValidate_FailFastOrder(t *testing.T) {
	// Both a channel violation and a schema violation: the channel one wins
	// because check groups run in a fixed order.
	doc := orderDoc()
	doc.Channels = append(doc.Channels, spec.ChannelSpec{Address: "orders/created"})
	doc.Components.Schemas[0].Properties = nil

	_, err := Validate(doc)
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "channel", refErr.Entity)
}
