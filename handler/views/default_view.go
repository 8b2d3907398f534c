package views

// Default default view
type Default struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DefaultSuccess default success view
var DefaultSuccess = Default{
	Code:    0,
	Message: "success",
}

// Operation result of a mutation
type Operation struct {
	Default
	TraceID string `json:"trace_id"`
}

// OperationSuccess success view of the operation traced by traceID
func OperationSuccess(traceID string) Operation {
	return Operation{
		Default: DefaultSuccess,
		TraceID: traceID,
	}
}
