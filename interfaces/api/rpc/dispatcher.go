// Package rpc implements a minimal JSON-RPC 2.0 dispatcher for the
// uploader surface. Single requests only; batch requests are rejected
// as invalid.
package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const Version = "2.0"

// Standard JSON-RPC error codes, plus HTTP-flavored codes for auth and
// conflict outcomes so RPC clients see the same taxonomy as REST ones.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeConflict     = 409
)

type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      json.RawMessage `json:"id"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// Params wraps the raw params payload. Handlers bind it to a typed
// struct (object params) or a slice (positional params).
type Params struct {
	raw json.RawMessage
}

func (p Params) Bind(dst interface{}) *Error {
	if len(p.raw) == 0 {
		return NewError(CodeInvalidParams, "params are required")
	}
	if err := json.Unmarshal(p.raw, dst); err != nil {
		return NewError(CodeInvalidParams, "malformed params: "+err.Error())
	}
	return nil
}

func (p Params) IsEmpty() bool {
	return len(p.raw) == 0 || string(p.raw) == "null"
}

// HandlerFunc implements one RPC method. The fiber context carries the
// authenticated user and request headers.
type HandlerFunc func(c *fiber.Ctx, params Params) (interface{}, *Error)

type Dispatcher struct {
	methods map[string]HandlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{methods: make(map[string]HandlerFunc)}
}

func (d *Dispatcher) Register(method string, handler HandlerFunc) {
	d.methods[method] = handler
}

// Dispatch parses and executes one request. The transport always
// answers HTTP 200; failures travel in the error member.
func (d *Dispatcher) Dispatch(c *fiber.Ctx, body []byte) Response {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return Response{JSONRPC: Version, Error: NewError(CodeParseError, "parse error")}
	}

	if req.JSONRPC != Version {
		return Response{JSONRPC: Version, ID: req.ID, Error: NewError(CodeInvalidRequest, "jsonrpc must be \"2.0\"")}
	}
	if req.Method == "" {
		return Response{JSONRPC: Version, ID: req.ID, Error: NewError(CodeInvalidRequest, "method is required")}
	}

	handler, ok := d.methods[req.Method]
	if !ok {
		return Response{JSONRPC: Version, ID: req.ID, Error: NewError(CodeMethodNotFound, "method not found: "+req.Method)}
	}

	result, rpcErr := handler(c, Params{raw: req.Params})
	if rpcErr != nil {
		return Response{JSONRPC: Version, ID: req.ID, Error: rpcErr}
	}
	return Response{JSONRPC: Version, ID: req.ID, Result: result}
}
