package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContactQuery(t *testing.T) {
	t.Run("BuildsEmailContainsFilter", func(t *testing.T) {
		query := "test@example.com"
		expected := FilterExpression{
			Payload: []FilterClause{
				{
					AttributeKey:        "email",
					FilterOperator:      "contains",
					Values:              []string{query},
					AttributeModel:      "standard",
					CustomAttributeType: "",
				},
			},
		}
		assert.Equal(t, expected, GenerateContactQuery(ContactQuery{Query: query}))
	})

	t.Run("EmptyQueryIsNotSpecialCased", func(t *testing.T) {
		expr := GenerateContactQuery(ContactQuery{Query: ""})
		require.Len(t, expr.Payload, 1)
		assert.Equal(t, []string{""}, expr.Payload[0].Values)
	})

	t.Run("WireShape", func(t *testing.T) {
		raw, err := json.Marshal(GenerateContactQuery(ContactQuery{Query: "john"}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"payload":[{
			"attribute_key":"email",
			"filter_operator":"contains",
			"values":["john"],
			"attribute_model":"standard",
			"custom_attribute_type":""
		}]}`, string(raw))
	})
}
