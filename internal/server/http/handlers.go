package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tsumeshogi/internal/logx"
	"tsumeshogi/internal/server/problem"
	"tsumeshogi/internal/shogi"
	"tsumeshogi/internal/tsume"
)

// Handler /api/* を受ける http.Handler
type Handler struct {
	log      logx.Logger
	solver   *tsume.Service
	problems *problem.Manager
}

func NewHandler(log logx.Logger, solver *tsume.Service) *Handler {
	return &Handler{
		log:      log,
		solver:   solver,
		problems: problem.NewManager(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/solve":
		h.handleSolve(w, r)
	case "/api/one_move":
		h.handleOneMove(w, r)
	case "/api/new_problem":
		h.handleNewProblem(w, r)
	case "/api/problem":
		h.handleProblem(w, r)
	case "/api/play":
		h.handlePlay(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	pos, err := shogi.DecodeSFEN(req.SFEN)
	if err != nil {
		http.Error(w, "invalid position", http.StatusBadRequest)
		return
	}

	opts := tsume.Options{MaxDepth: req.MaxDepth}
	if req.TimeoutMs > 0 {
		opts.Timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}
	res, err := h.solver.SearchWith(pos, intToSide(req.Attacker), opts)
	if err != nil {
		if errors.Is(err, shogi.ErrNoKing) || errors.Is(err, tsume.ErrInvalidSide) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Errorf("solve failed: %v", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}

	h.log.Infof("solve sfen=%q mate=%v nodes=%d elapsed=%s", req.SFEN, res.IsMate, res.Nodes, res.Elapsed)
	writeJSON(h.log, w, SolveResponse{
		IsMate: res.IsMate,
		Moves:  movesToUSI(res.Moves),
		Nodes:  res.Nodes,
		TimeMs: res.Elapsed.Milliseconds(),
	})
}

func (h *Handler) handleOneMove(w http.ResponseWriter, r *http.Request) {
	var req OneMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	pos, err := shogi.DecodeSFEN(req.SFEN)
	if err != nil {
		http.Error(w, "invalid position", http.StatusBadRequest)
		return
	}

	mv := h.solver.FindOneMoveCheckmate(pos, intToSide(req.Attacker))
	resp := OneMoveResponse{}
	if mv != nil {
		resp.Found = true
		resp.Move = mv.USI()
	}
	writeJSON(h.log, w, resp)
}

func (h *Handler) handleNewProblem(w http.ResponseWriter, r *http.Request) {
	var req NewProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	pos, err := shogi.DecodeSFEN(req.SFEN)
	if err != nil {
		http.Error(w, "invalid position", http.StatusBadRequest)
		return
	}
	if err := pos.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	attacker := intToSide(req.Attacker)
	if pos.SideToMove != attacker {
		pos.SideToMove = attacker
		pos.Hash = pos.CalculateHash()
	}
	st := h.problems.New(pos, attacker)
	h.log.Infof("new problem id=%s sfen=%q", st.ID, st.Pos.EncodeSFEN())
	writeJSON(h.log, w, problemResponse(st))
}

func (h *Handler) handleProblem(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	st, err := h.problems.Get(req.ProblemID)
	if err != nil {
		http.Error(w, "problem not found", http.StatusNotFound)
		return
	}
	writeJSON(h.log, w, problemResponse(st))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	st, err := h.problems.Get(req.ProblemID)
	if err != nil {
		http.Error(w, "problem not found", http.StatusNotFound)
		return
	}

	pos := st.Pos
	mv, err := pos.ParseUSIMove(req.Move)
	if err != nil {
		http.Error(w, "invalid move notation", http.StatusBadRequest)
		return
	}

	// 合法手のひとつであることを確かめてから適用する
	legal := pos.GenerateLegalMoves()
	found := false
	for _, lm := range legal {
		if lm.From == mv.From && lm.To == mv.To && lm.Piece == mv.Piece && lm.Promote == mv.Promote {
			found = true
			break
		}
	}
	if !found {
		http.Error(w, "illegal move", http.StatusBadRequest)
		return
	}

	next, ok := pos.ApplyMove(mv)
	if !ok {
		http.Error(w, "apply move failed", http.StatusInternalServerError)
		return
	}
	if err := h.problems.Update(st.ID, next); err != nil {
		http.Error(w, "problem not found", http.StatusNotFound)
		return
	}
	writeJSON(h.log, w, problemResponse(st))
}

func problemResponse(st *problem.State) ProblemResponse {
	pos := st.Pos
	return ProblemResponse{
		ProblemID:  st.ID,
		Position:   pos.EncodeSFEN(),
		ToMove:     sideToInt(pos.SideToMove),
		LegalMoves: movesToUSI(pos.GenerateLegalMoves()),
		Status:     statusOf(pos),
	}
}

func writeJSON(log logx.Logger, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("writeJSON: %v", err)
	}
}
