package lsp

const RPC_VERSION = "2.0"

type Request struct {
	RPC    string `json:"jsonrpc"`
	ID     int    `json:"id"`
	Method string `json:"method"`
}

type Response struct {
	RPC string `json:"jsonrpc"`
	ID  *int   `json:"id"`
}

type Notification struct {
	RPC    string `json:"jsonrpc"`
	Method string `json:"method"`
}

// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#responseError
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	CodeInvalidParams    = -32602
	CodeInternalError    = -32603
	CodeRequestCancelled = -32800
	CodeUnknownDocument  = -32001
)

type ErrorResponse struct {
	Response
	Error *ResponseError `json:"error"`
}

func NewErrorResponse(id int, code int, message string) ErrorResponse {
	return ErrorResponse{
		Response: Response{
			RPC: RPC_VERSION,
			ID:  &id,
		},
		Error: &ResponseError{
			Code:    code,
			Message: message,
		},
	}
}
