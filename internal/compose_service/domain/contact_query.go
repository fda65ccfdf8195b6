package domain

// Filter clause constants understood by the backend's filter engine.
const (
	FilterAttributeEmail     = "email"
	FilterOperatorContains   = "contains"
	FilterAttributeModelStd  = "standard"
	FilterCustomAttrTypeNone = ""
)

// FilterClause is a single attribute comparison.
type FilterClause struct {
	AttributeKey        string   `json:"attribute_key"`
	FilterOperator      string   `json:"filter_operator"`
	Values              []string `json:"values"`
	AttributeModel      string   `json:"attribute_model"`
	CustomAttributeType string   `json:"custom_attribute_type"`
}

// FilterExpression is the structured filter sent to the contact filter endpoint.
type FilterExpression struct {
	Payload []FilterClause `json:"payload"`
}

// ContactQuery is a free-text contact search.
type ContactQuery struct {
	Query string
}

// GenerateContactQuery compiles a free-text query into an "email contains"
// filter. The empty query is passed through like any other value.
func GenerateContactQuery(q ContactQuery) FilterExpression {
	return FilterExpression{
		Payload: []FilterClause{
			{
				AttributeKey:        FilterAttributeEmail,
				FilterOperator:      FilterOperatorContains,
				Values:              []string{q.Query},
				AttributeModel:      FilterAttributeModelStd,
				CustomAttributeType: FilterCustomAttrTypeNone,
			},
		},
	}
}
