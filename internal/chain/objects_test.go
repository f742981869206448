package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func objectFixture(id string, version uint64) string {
	return fmt.Sprintf(`{"data":{
		"objectId":"%s","version":"%d","digest":"%s","type":"0x2::coin::Coin<0x2::sui::SUI>",
		"content":{"dataType":"moveObject","type":"0x2::coin::Coin<0x2::sui::SUI>","hasPublicTransfer":true,
			"fields":{"balance":"1000","id":{"id":"%s"}}},
		"display":{"data":{"name":"Gas coin","image_url":"https://example.com/sui.png"},"error":null}
	}}`, id, version, digestA, id)
}

func TestGetObject(t *testing.T) {
	srv := fakeNode(t, func(t *testing.T, method string, params []json.RawMessage) (any, *nodeError) {
		assert.Equal(t, "sui_getObject", method)
		opts := decodeParam[map[string]bool](t, params[1])
		assert.True(t, opts["showContent"])
		assert.True(t, opts["showDisplay"])
		assert.True(t, opts["showType"])
		return rawJSON(t, objectFixture("0x5", 12)), nil
	})

	obj, err := NewSUIClient(srv.URL).GetObject(context.Background(), "0x5")
	require.NoError(t, err)
	assert.Equal(t, "0x5", obj.ID)
	assert.Equal(t, uint64(12), obj.Version)
	assert.Equal(t, "0x2::coin::Coin<0x2::sui::SUI>", obj.Type)
	assert.Equal(t, "1000", obj.Fields["balance"])
	assert.Equal(t, "Gas coin", obj.Display["name"])
}

func TestGetObjectNotFound(t *testing.T) {
	srv := staticNode(t, map[string]any{
		"sui_getObject": rawJSON(t, `{"error":{"code":"notExists","object_id":"0x9"}}`),
	})

	_, err := NewSUIClient(srv.URL).GetObject(context.Background(), "0x9")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Contains(t, err.Error(), "notExists")
}

func TestGetObjectPackageHasNoFields(t *testing.T) {
	srv := staticNode(t, map[string]any{
		"sui_getObject": rawJSON(t, `{"data":{"objectId":"0x2","version":"1","digest":"`+digestB+`","type":"package",
			"content":{"dataType":"package","disassembled":{}}}}`),
	})

	obj, err := NewSUIClient(srv.URL).GetObject(context.Background(), "0x2")
	require.NoError(t, err)
	assert.Equal(t, "package", obj.Type)
	assert.Nil(t, obj.Fields)
	assert.Nil(t, obj.Display)
}

func TestMultiGetObjectsChunksAndKeepsOrder(t *testing.T) {
	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("0x%x", i+1)
	}

	var calls atomic.Int32
	srv := fakeNode(t, func(t *testing.T, method string, params []json.RawMessage) (any, *nodeError) {
		assert.Equal(t, "sui_multiGetObjects", method)
		calls.Add(1)
		chunk := decodeParam[[]string](t, params[0])
		assert.LessOrEqual(t, len(chunk), maxObjectsPerCall)

		out := make([]json.RawMessage, len(chunk))
		for i, id := range chunk {
			out[i] = rawJSON(t, objectFixture(id, uint64(i)))
		}
		return out, nil
	})

	objs, err := NewSUIClient(srv.URL).MultiGetObjects(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	require.Len(t, objs, len(ids))
	for i, obj := range objs {
		assert.Equal(t, ids[i], obj.ID, "order must be preserved at index %d", i)
	}
}

func TestMultiGetObjectsEmpty(t *testing.T) {
	objs, err := NewSUIClient("http://127.0.0.1:19991").MultiGetObjects(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestMultiGetObjectsMissingObject(t *testing.T) {
	srv := staticNode(t, map[string]any{
		"sui_multiGetObjects": []json.RawMessage{
			rawJSON(t, objectFixture("0x1", 1)),
			rawJSON(t, `{"error":{"code":"deleted","object_id":"0x2"}}`),
		},
	})

	_, err := NewSUIClient(srv.URL).MultiGetObjects(context.Background(), []string{"0x1", "0x2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Contains(t, err.Error(), "0x2")
}

func TestMultiGetObjectsLengthMismatch(t *testing.T) {
	srv := staticNode(t, map[string]any{
		"sui_multiGetObjects": []json.RawMessage{rawJSON(t, objectFixture("0x1", 1))},
	})

	_, err := NewSUIClient(srv.URL).MultiGetObjects(context.Background(), []string{"0x1", "0x2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 1 objects for 2 ids")
}

func TestGetNormalizedMoveModule(t *testing.T) {
	srv := fakeNode(t, func(t *testing.T, method string, params []json.RawMessage) (any, *nodeError) {
		assert.Equal(t, "sui_getNormalizedMoveModule", method)
		assert.Equal(t, "0x2", decodeParam[string](t, params[0]))
		assert.Equal(t, "coin", decodeParam[string](t, params[1]))
		return rawJSON(t, `{
			"fileFormatVersion":6,"address":"0x2","name":"coin",
			"friends":[{"address":"0x2","name":"balance"}],
			"structs":{"Coin":{"abilities":{"abilities":["Store","Key"]},"typeParameters":[],"fields":[]}},
			"exposedFunctions":{"value":{"visibility":"Public","isEntry":false,
				"typeParameters":[{"abilities":[]}],"parameters":[{"Reference":{"Struct":{}}}],"return":["U64"]}}
		}`), nil
	})

	mod, err := NewSUIClient(srv.URL).GetNormalizedMoveModule(context.Background(), "0x2", "coin")
	require.NoError(t, err)
	assert.Equal(t, 6, mod.FileFormatVersion)
	assert.Equal(t, "coin", mod.Name)
	assert.Equal(t, []ModuleID{{Address: "0x2", Name: "balance"}}, mod.Friends)
	assert.Contains(t, mod.Structs, "Coin")

	fn, ok := mod.ExposedFunctions["value"]
	require.True(t, ok)
	assert.Equal(t, "Public", fn.Visibility)
	assert.False(t, fn.IsEntry)
	require.Len(t, fn.Return, 1)
	assert.JSONEq(t, `"U64"`, string(fn.Return[0]))
}

func TestGetNormalizedMoveModulesByPackage(t *testing.T) {
	srv := staticNode(t, map[string]any{
		"sui_getNormalizedMoveModulesByPackage": rawJSON(t, `{
			"coin":{"fileFormatVersion":6,"address":"0x2","name":"coin","friends":[],"structs":{},"exposedFunctions":{}},
			"pay":{"fileFormatVersion":6,"address":"0x2","name":"pay","friends":[],"structs":{},"exposedFunctions":{}}
		}`),
	})

	mods, err := NewSUIClient(srv.URL).GetNormalizedMoveModulesByPackage(context.Background(), "0x2")
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "pay", mods["pay"].Name)
}
