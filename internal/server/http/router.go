package httpserver

import "net/http"

// Server Handler を包むだけの薄い層。main からは NewHandler を直接
// 使ってもよい。
type Server struct {
	h http.Handler
}

func NewServer(h http.Handler) *Server {
	return &Server{h: h}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}
