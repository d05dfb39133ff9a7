package models

// GrafanaQuery is the request body of the JSON datasource /query endpoint.
// Range timestamps arrive as RFC3339 strings; targets and interval metadata
// are carried through but not consumed by the translation core.
type GrafanaQuery struct {
	Range         QueryRange    `json:"range"`
	IntervalMs    int64         `json:"intervalMs"`
	MaxDataPoints int64         `json:"maxDataPoints"`
	Targets       []QueryTarget `json:"targets"`
	AdhocFilters  []AdhocFilter `json:"adhocFilters"`
}

type QueryRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type QueryTarget struct {
	Target string `json:"target"`
	RefID  string `json:"refId"`
	Type   string `json:"type"`
}

// AdhocFilter is one dashboard-supplied (key, operator, value) constraint.
type AdhocFilter struct {
	Key      string `json:"key"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// FilterMap flattens the ad-hoc filter list into a key → value lookup, the
// form the query translator and the stores consume.
func (q GrafanaQuery) FilterMap() map[string]string {
	if len(q.AdhocFilters) == 0 {
		return nil
	}
	filters := make(map[string]string, len(q.AdhocFilters))
	for _, f := range q.AdhocFilters {
		filters[f.Key] = f.Value
	}
	return filters
}

// TableColumn is one named, typed column of a tabular response.
type TableColumn struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// TableResponse is the tabular result shape the dashboard expects: an ordered
// column list plus positional rows aligned to it.
type TableResponse struct {
	Columns []TableColumn `json:"columns"`
	Rows    [][]any       `json:"rows"`
	Type    string        `json:"type"`
}
