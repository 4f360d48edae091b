package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zapcore"

	"tsumeshogi/internal/logx"
	"tsumeshogi/internal/tsume"
)

func newTestHandler() *Handler {
	l := logx.NewLogx(zapcore.ErrorLevel, false, false)
	l.InitLogger(io.Discard)
	return NewHandler(l, tsume.NewService(tsume.Options{MaxDepth: 5}))
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHandleSolve(t *testing.T) {
	h := newTestHandler()

	rec := post(t, h, "/api/solve", SolveRequest{
		SFEN:     "7pk/7p1/8K/9/9/9/9/9/9 b G 1",
		Attacker: 0,
		MaxDepth: 1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[SolveResponse](t, rec)
	if !resp.IsMate || len(resp.Moves) != 1 || resp.Moves[0] != "G*1b" {
		t.Fatalf("unexpected solve result: %+v", resp)
	}
	if resp.Nodes == 0 {
		t.Error("nodes missing from response")
	}
}

func TestHandleSolveBadInputs(t *testing.T) {
	h := newTestHandler()

	t.Run("BadJSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/solve", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status: got=%d", rec.Code)
		}
	})
	t.Run("BadSFEN", func(t *testing.T) {
		rec := post(t, h, "/api/solve", SolveRequest{SFEN: "garbage"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status: got=%d", rec.Code)
		}
	})
	t.Run("MissingKing", func(t *testing.T) {
		rec := post(t, h, "/api/solve", SolveRequest{SFEN: "9/9/9/9/9/9/9/9/4K4 b - 1"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status: got=%d", rec.Code)
		}
	})
	t.Run("WrongMethod", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/solve", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status: got=%d", rec.Code)
		}
	})
}

func TestHandleOneMove(t *testing.T) {
	h := newTestHandler()

	rec := post(t, h, "/api/one_move", OneMoveRequest{SFEN: "7pk/7p1/8K/9/9/9/9/9/9 b G 1"})
	resp := decodeBody[OneMoveResponse](t, rec)
	if !resp.Found || resp.Move != "G*1b" {
		t.Fatalf("unexpected one_move result: %+v", resp)
	}

	rec = post(t, h, "/api/one_move", OneMoveRequest{SFEN: "9/9/9/9/4k4/9/9/9/4K4 b G 1"})
	resp = decodeBody[OneMoveResponse](t, rec)
	if resp.Found {
		t.Fatalf("open king should not have a one-move mate: %+v", resp)
	}
}

func TestProblemLifecycle(t *testing.T) {
	h := newTestHandler()

	rec := post(t, h, "/api/new_problem", NewProblemRequest{SFEN: "7pk/7p1/8K/9/9/9/9/9/9 b G 1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("new_problem status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	created := decodeBody[ProblemResponse](t, rec)
	if created.ProblemID == "" || created.Status != "ongoing" {
		t.Fatalf("unexpected new_problem response: %+v", created)
	}

	rec = post(t, h, "/api/problem", StateRequest{ProblemID: created.ProblemID})
	state := decodeBody[ProblemResponse](t, rec)
	if state.Position != created.Position {
		t.Fatalf("state mismatch: %+v vs %+v", state, created)
	}

	// 正解の一手で即詰み
	rec = post(t, h, "/api/play", PlayRequest{ProblemID: created.ProblemID, Move: "G*1b"})
	if rec.Code != http.StatusOK {
		t.Fatalf("play status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	after := decodeBody[ProblemResponse](t, rec)
	if after.Status != "mate" || len(after.LegalMoves) != 0 {
		t.Fatalf("want mate after G*1b, got %+v", after)
	}

	// 不正な手は弾く
	rec = post(t, h, "/api/play", PlayRequest{ProblemID: created.ProblemID, Move: "G*5e"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("illegal move status: got=%d", rec.Code)
	}

	rec = post(t, h, "/api/problem", StateRequest{ProblemID: "nope"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown problem status: got=%d", rec.Code)
	}
}
