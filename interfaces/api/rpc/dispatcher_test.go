package rpc

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func testCtx(t *testing.T) *fiber.Ctx {
	t.Helper()
	app := fiber.New()
	ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
	t.Cleanup(func() { app.ReleaseCtx(ctx) })
	return ctx
}

func TestDispatchKnownMethod(t *testing.T) {
	d := NewDispatcher()
	d.Register("echo", func(c *fiber.Ctx, params Params) (interface{}, *Error) {
		var p struct {
			Message string `json:"message"`
		}
		if err := params.Bind(&p); err != nil {
			return nil, err
		}
		return p.Message, nil
	})

	resp := d.Dispatch(testCtx(t), []byte(`{"jsonrpc":"2.0","method":"echo","params":{"message":"meow"},"id":1}`))

	require.Nil(t, resp.Error)
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, "meow", resp.Result)
	assert.Equal(t, "1", string(resp.ID))
}

func TestDispatchParseError(t *testing.T) {
	d := NewDispatcher()

	resp := d.Dispatch(testCtx(t), []byte(`{not json`))

	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeParseError, resp.Error.Code)
}

func TestDispatchInvalidVersion(t *testing.T) {
	d := NewDispatcher()

	resp := d.Dispatch(testCtx(t), []byte(`{"jsonrpc":"1.0","method":"echo","id":2}`))

	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidRequest, resp.Error.Code)
}

func TestDispatchMethodNotFound(t *testing.T) {
	d := NewDispatcher()

	resp := d.Dispatch(testCtx(t), []byte(`{"jsonrpc":"2.0","method":"nope","id":3}`))

	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeMethodNotFound, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "nope")
}

func TestDispatchHandlerError(t *testing.T) {
	d := NewDispatcher()
	d.Register("boom", func(c *fiber.Ctx, params Params) (interface{}, *Error) {
		return nil, NewError(CodeConflict, "already there")
	})

	resp := d.Dispatch(testCtx(t), []byte(`{"jsonrpc":"2.0","method":"boom","id":4}`))

	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeConflict, resp.Error.Code)
	assert.Nil(t, resp.Result)
}

func TestParamsBindMissing(t *testing.T) {
	var p Params
	var dst struct{}
	err := p.Bind(&dst)
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidParams, err.Code)
}
