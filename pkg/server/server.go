package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/blasterbug/glossygloss/internal/logger"
	"github.com/blasterbug/glossygloss/pkg/config"
	"github.com/blasterbug/glossygloss/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles IPC requests against a Dictionary.
type Server struct {
	dict    *dictionary.Dictionary
	config  *config.Config
	decoder *msgpack.Decoder
	writer  *bufio.Writer
	encoder *msgpack.Encoder
	logger  *log.Logger
	handled int
}

// NewServer creates a server reading requests from r and writing responses to w,
// usually the process's stdin and stdout.
func NewServer(dict *dictionary.Dictionary, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		dict:    dict,
		config:  cfg,
		decoder: msgpack.NewDecoder(bufio.NewReader(r)),
		writer:  bw,
		encoder: msgpack.NewEncoder(bw),
		logger:  logger.New("ipc"),
	}
}

// Start processes requests until the input stream ends.
func (s *Server) Start() error {
	s.logger.Debug("Starting server", "backend", s.dict.BackendName())

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.logger.Debug("Client disconnected", "handled", s.handled)
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			return fmt.Errorf("decoding request: %w", err)
		}
		if err := s.send(s.Handle(req)); err != nil {
			return err
		}
	}
}

// Handle executes one request.
func (s *Server) Handle(req Request) Response {
	start := time.Now()
	s.handled++

	resp := s.dispatch(req)
	resp.ID = req.ID
	if resp.Status == "" {
		resp.Status = StatusOK
	}
	resp.TimeTaken = time.Since(start).Microseconds()
	return resp
}

func (s *Server) dispatch(req Request) Response {
	switch req.Action {
	case ActionHealth:
		return Response{}
	case ActionStats:
		return Response{Stats: s.dict.Stats(), N: s.dict.Len()}
	case ActionTop:
		return s.handleTop(req)
	case ActionAdd, ActionIncrement, ActionCount, ActionContains, ActionRemove:
		if err := s.validateWord(req.Word); err != nil {
			return errorResponse(err.Error())
		}
	default:
		return errorResponse(fmt.Sprintf("unknown action: %q", req.Action))
	}

	switch req.Action {
	case ActionAdd:
		if err := s.dict.AddWord(req.Word); err != nil {
			return errorResponse(err.Error())
		}
		return Response{OK: true, N: s.dict.CountOf(req.Word)}
	case ActionIncrement:
		ok := s.dict.IncrementWord(req.Word)
		return Response{OK: ok, N: s.dict.CountOf(req.Word)}
	case ActionCount:
		return Response{N: s.dict.CountOf(req.Word)}
	case ActionContains:
		return Response{OK: s.dict.ContainsWord(req.Word)}
	default:
		return Response{OK: s.dict.RemoveWord(req.Word)}
	}
}

func (s *Server) validateWord(word string) error {
	if word == "" {
		return errors.New("missing 'w' parameter")
	}
	if limit := s.config.Server.MaxWordLen; limit > 0 && len(word) > limit {
		return fmt.Errorf("word exceeds maximum length of %d bytes", limit)
	}
	return nil
}

func (s *Server) handleTop(req Request) Response {
	k := req.K
	if k <= 0 {
		k = s.config.CLI.DefaultTop
	}
	if limit := s.config.Server.MaxTop; limit > 0 && k > limit {
		s.logger.Debugf("Clamping top request from %d to %d", k, limit)
		k = limit
	}

	top := s.dict.TopFrequent(k)
	pairs := make([]WordCount, len(top))
	for i, p := range top {
		pairs[i] = WordCount{Word: p.Word, Count: p.Count}
	}
	return Response{Pairs: pairs, N: len(pairs)}
}

func errorResponse(msg string) Response {
	return Response{Status: StatusError, Error: msg}
}

func (s *Server) send(resp Response) error {
	if err := s.encoder.Encode(resp); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encoding response: %w", err)
	}
	return s.writer.Flush()
}
