package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope types
const (
	TypeRequest  = "request"
	TypeResponse = "response"
	TypeEvent    = "event"
)

// Error codes, JSON-RPC style
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// MessageEnvelope is the top-level message structure for all communications.
// One envelope is sent per line.
type MessageEnvelope struct {
	Type     string    `json:"type"` // "request", "response", or "event"
	Request  *Request  `json:"request,omitempty"`
	Response *Response `json:"response,omitempty"`
	Event    *Event    `json:"event,omitempty"`
}

// Request represents an RPC request
type Request struct {
	ID     string                 `json:"id"`
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
}

// Response represents an RPC response
type Response struct {
	ID     string                 `json:"id"`
	Result map[string]interface{} `json:"result,omitempty"`
	Error  *ErrorInfo             `json:"error,omitempty"`
}

// ErrorInfo represents an error in a response
type ErrorInfo struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Event represents an asynchronous event from the server
type Event struct {
	EventType string                 `json:"eventType"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewRequest creates a new request envelope
func NewRequest(id, method string, params map[string]interface{}) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeRequest,
		Request: &Request{
			ID:     id,
			Method: method,
			Params: params,
		},
	}
}

// NewResponse creates a successful response envelope
func NewResponse(id string, result map[string]interface{}) *MessageEnvelope {
	if result == nil {
		result = map[string]interface{}{}
	}
	return &MessageEnvelope{
		Type:     TypeResponse,
		Response: &Response{ID: id, Result: result},
	}
}

// NewErrorResponse creates an error response envelope
func NewErrorResponse(id string, code int, format string, args ...interface{}) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeResponse,
		Response: &Response{
			ID:    id,
			Error: &ErrorInfo{Code: code, Message: fmt.Sprintf(format, args...)},
		},
	}
}

// NewEvent creates an event envelope stamped with the current time
func NewEvent(eventType string, data map[string]interface{}) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeEvent,
		Event: &Event{
			EventType: eventType,
			Data:      data,
			Timestamp: time.Now(),
		},
	}
}

// IsError returns true if the response contains an error
func (r *Response) IsError() bool {
	return r.Error != nil
}

// GetError returns the error message if present
func (r *Response) GetError() string {
	if r.Error != nil {
		return r.Error.Message
	}
	return ""
}

// Err converts an error response into a Go error, nil otherwise
func (r *Response) Err() error {
	if r.Error == nil {
		return nil
	}
	return fmt.Errorf("server error %d: %s", r.Error.Code, r.Error.Message)
}

// ParseEnvelope decodes one line of the wire protocol
func ParseEnvelope(line []byte) (*MessageEnvelope, error) {
	var env MessageEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	switch env.Type {
	case TypeRequest:
		if env.Request == nil {
			return nil, fmt.Errorf("request envelope has nil request")
		}
	case TypeResponse:
		if env.Response == nil {
			return nil, fmt.Errorf("response envelope has nil response")
		}
	case TypeEvent:
		if env.Event == nil {
			return nil, fmt.Errorf("event envelope has nil event")
		}
	default:
		return nil, fmt.Errorf("unknown envelope type: %q", env.Type)
	}
	return &env, nil
}

// Marshal encodes the envelope as one newline-terminated line
func (m *MessageEnvelope) Marshal() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
