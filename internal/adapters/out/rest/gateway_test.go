package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatchboard/internal/adapters/out/rest"
	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/note"
	"dispatchboard/internal/core/domain/model/run"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGateway_FetchSnapshot(t *testing.T) {
	t.Run("should decode the snapshot payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v1/board", r.URL.Path)
			_, _ = w.Write([]byte(`{
				"orders": [
					{"id":"o1","number":"SO-1001","customerCode":"ACME","quantity":4,
					 "status":"Picked","class":"Sales","date":"2025-01-06"}
				],
				"runs": [{"id":"r1","name":"Morning","orderIds":["o1"],"note":""}],
				"cells": {"TR-01|2025-01-06":{"runIds":["r1"],"looseOrderIds":[]}},
				"trucks": [{"id":"TR-01","name":"Truck 1"}],
				"notes": [{"id":"n1","text":"gate code","color":"yellow","pinned":true,"runId":"r1"}]
			}`))
		}))
		defer server.Close()

		gateway := rest.NewGateway(server.URL, discardLogger())
		snapshot, err := gateway.FetchSnapshot(context.Background())

		require.NoError(t, err)
		require.Len(t, snapshot.Orders, 1)
		assert.Equal(t, "o1", snapshot.Orders[0].ID())
		assert.Equal(t, "ACME", snapshot.Orders[0].CustomerCode())

		require.Len(t, snapshot.Runs, 1)
		assert.Equal(t, []string{"o1"}, snapshot.Runs[0].OrderIDs())

		key, keyErr := kernel.ParseCellKey("TR-01|2025-01-06")
		require.NoError(t, keyErr)
		cell, ok := snapshot.Cells[key]
		require.True(t, ok)
		assert.Equal(t, []string{"r1"}, cell.RunIDs)

		assert.Equal(t, []string{"TR-01"}, snapshot.Trucks)
		assert.Equal(t, "Truck 1", snapshot.TruckNames["TR-01"])

		require.Len(t, snapshot.Notes, 1)
		runID, ok := snapshot.Notes[0].Target().RunID()
		require.True(t, ok)
		assert.Equal(t, "r1", runID)
	})

	t.Run("should skip malformed entities instead of failing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{
				"orders": [
					{"id":"o1","number":"SO-1001","customerCode":"ACME","quantity":4,
					 "status":"Bogus","class":"Sales","date":"2025-01-06"},
					{"id":"o2","number":"SO-1002","customerCode":"BETA","quantity":1,
					 "status":"Picked","class":"Sales","date":"2025-01-06"}
				],
				"runs": [],
				"cells": {"not-a-key":{"runIds":[]}},
				"trucks": [],
				"notes": []
			}`))
		}))
		defer server.Close()

		gateway := rest.NewGateway(server.URL, discardLogger())
		snapshot, err := gateway.FetchSnapshot(context.Background())

		require.NoError(t, err)
		require.Len(t, snapshot.Orders, 1)
		assert.Equal(t, "o2", snapshot.Orders[0].ID())
		assert.Empty(t, snapshot.Cells)
	})

	t.Run("should fail on a non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		gateway := rest.NewGateway(server.URL, discardLogger())
		_, err := gateway.FetchSnapshot(context.Background())

		require.Error(t, err)
	})
}

func TestGateway_SaveOrderPlacement(t *testing.T) {
	t.Run("should send the placement body", func(t *testing.T) {
		var received map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "/api/v1/orders/o1/placement", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		day, err := kernel.NewDate("2025-01-06")
		require.NoError(t, err)
		cell, err := kernel.NewCellKey("TR-01", day)
		require.NoError(t, err)

		gateway := rest.NewGateway(server.URL, discardLogger())
		require.NoError(t, gateway.SaveOrderPlacement(context.Background(), "o1", "r1", cell, 2))

		assert.Equal(t, "o1", received["orderId"])
		assert.Equal(t, "r1", received["runId"])
		assert.Equal(t, "TR-01|2025-01-06", received["cellKey"])
		assert.Equal(t, float64(2), received["index"])
	})

	t.Run("should fail on an error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer server.Close()

		day, err := kernel.NewDate("2025-01-06")
		require.NoError(t, err)
		cell, err := kernel.NewCellKey("TR-01", day)
		require.NoError(t, err)

		gateway := rest.NewGateway(server.URL, discardLogger())
		require.Error(t, gateway.SaveOrderPlacement(context.Background(), "o1", "", cell, -1))
	})
}

func TestGateway_SaveRun(t *testing.T) {
	t.Run("should send run body with cell key", func(t *testing.T) {
		var received map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "/api/v1/runs/r1", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		day, err := kernel.NewDate("2025-01-06")
		require.NoError(t, err)
		cell, err := kernel.NewCellKey("TR-01", day)
		require.NoError(t, err)
		aggregate, err := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o2"}, "")
		require.NoError(t, err)

		gateway := rest.NewGateway(server.URL, discardLogger())
		require.NoError(t, gateway.SaveRun(context.Background(), aggregate, cell))

		assert.Equal(t, "r1", received["id"])
		assert.Equal(t, []any{"o1", "o2"}, received["orderIds"])
		assert.Equal(t, "TR-01|2025-01-06", received["cellKey"])
	})
}

func TestGateway_DeleteAndNotes(t *testing.T) {
	t.Run("should issue deletes against the entity paths", func(t *testing.T) {
		var paths []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			paths = append(paths, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		gateway := rest.NewGateway(server.URL, discardLogger())
		require.NoError(t, gateway.DeleteRun(context.Background(), "r1"))
		require.NoError(t, gateway.DeleteNote(context.Background(), "n1"))

		assert.Equal(t, []string{"/api/v1/runs/r1", "/api/v1/notes/n1"}, paths)
	})

	t.Run("should send note body with attachment", func(t *testing.T) {
		var received map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v1/notes/n1", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		target, err := note.OrderTarget("o1")
		require.NoError(t, err)
		aggregate, err := note.RestoreNote("n1", "call ahead", "red", true, target)
		require.NoError(t, err)

		gateway := rest.NewGateway(server.URL, discardLogger())
		require.NoError(t, gateway.SaveNote(context.Background(), aggregate))

		assert.Equal(t, "call ahead", received["text"])
		assert.Equal(t, "o1", received["orderId"])
		assert.Equal(t, true, received["pinned"])
	})
}
