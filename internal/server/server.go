package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/matkrin/colord/internal/lsp"
)

type queuedMessage struct {
	method   string
	contents []byte
}

// Server dispatches decoded protocol messages. Notifications apply on the
// queue goroutine in arrival order, so a document's revision sequence
// follows the client's edit order; requests run on their own goroutines
// against an immutable snapshot and may overlap later edits freely.
type Server struct {
	name         string
	version      string
	state        *State
	writer       io.Writer
	messageQueue chan queuedMessage
	wg           sync.WaitGroup
	mu           sync.Mutex

	pendingMu sync.Mutex
	pending   map[int]context.CancelFunc
}

func NewServer(name, version string, state *State, writer io.Writer) *Server {
	s := &Server{
		name:         name,
		version:      version,
		state:        state,
		writer:       writer,
		messageQueue: make(chan queuedMessage),
		pending:      make(map[int]context.CancelFunc),
	}

	s.wg.Add(1)
	go s.run()

	return s
}

func (s *Server) run() {
	defer s.wg.Done()
	for msg := range s.messageQueue {
		s.dispatchMessage(msg.method, msg.contents)
	}
}

func (s *Server) HandleMessage(method string, contents []byte) {
	// The caller may reuse its read buffer once this returns.
	s.messageQueue <- queuedMessage{method: method, contents: bytes.Clone(contents)}
}

func (s *Server) Stop() {
	close(s.messageQueue)
	s.wg.Wait()
}

func (s *Server) dispatchMessage(method string, contents []byte) {
	slog.Info("Received message", "method", method)

	switch method {
	case "initialize":
		var request lsp.InitializeRequest
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		if request.Params.ClientInfo != nil {
			slog.Info("Connected to client",
				"name", request.Params.ClientInfo.Name,
				"version", request.Params.ClientInfo.Version,
			)
		}

		capabilities := lsp.ServerCapabilities{
			TextDocumentSync: lsp.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    2,
			},
			ColorProvider: true,
		}
		info := lsp.ServerInfo{
			Name:    s.name,
			Version: s.version,
		}

		msg := lsp.NewInitializeResponse(request.ID, &capabilities, &info)
		s.writeResponse(msg)

	case "initialized":

	case "shutdown":
		var request lsp.ShutdownRequest
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		slog.Info("Received shutdown request")
		s.state.ShutdownRequested = true

		response := lsp.ShutdownResponse{
			Response: lsp.Response{
				RPC: lsp.RPC_VERSION,
				ID:  &request.ID,
			},
			Result: nil,
		}
		s.writeResponse(response)

	case "exit":
		slog.Info("Exiting")
		if s.state.ShutdownRequested {
			os.Exit(0)
		} else {
			slog.Warn("Exiting without preceding shutdown request")
			os.Exit(1)
		}

	case "textDocument/didOpen":
		var request lsp.DidOpenTextDocumentNotification
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		doc := request.Params.TextDocument
		s.state.OpenDocument(doc.URI, doc.LanguageID, doc.Text)

	case "textDocument/didChange":
		var request lsp.DidChangeTextDocumentNotification
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		uri := request.Params.TextDocument.URI
		if err := s.state.ChangeDocument(uri, request.Params.ContentChanges); err != nil {
			slog.Error("Could not apply change", "URI", uri, "err", err)
		}

	case "textDocument/didClose":
		var request lsp.DidCloseTextDocumentNotification
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		s.state.CloseDocument(request.Params.TextDocument.URI)

	case "textDocument/documentColor":
		var request lsp.DocumentColorRequest
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		ctx := s.trackRequest(request.ID)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrackRequest(request.ID)
			if response := handleDocumentColor(ctx, &request, s.state); response != nil {
				s.writeResponse(response)
			}
		}()

	case "textDocument/colorPresentation":
		var request lsp.ColorPresentationRequest
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if response := handleColorPresentation(&request, s.state); response != nil {
				s.writeResponse(response)
			}
		}()

	case "$/cancelRequest":
		var request lsp.CancelRequestNotification
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		s.cancelRequest(request.Params.ID)
	}
}

// trackRequest registers a cancelable context for a request id. Cancellation
// detaches only this request's wait; any scan it started keeps running and
// lands in the cache.
func (s *Server) trackRequest(id int) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	s.pendingMu.Lock()
	s.pending[id] = cancel
	s.pendingMu.Unlock()
	return ctx
}

func (s *Server) untrackRequest(id int) {
	s.pendingMu.Lock()
	if cancel, ok := s.pending[id]; ok {
		cancel()
		delete(s.pending, id)
	}
	s.pendingMu.Unlock()
}

func (s *Server) cancelRequest(id int) {
	s.pendingMu.Lock()
	cancel, ok := s.pending[id]
	s.pendingMu.Unlock()
	if ok {
		slog.Debug("Cancelling request", "id", id)
		cancel()
	}
}

func (s *Server) writeResponse(msg any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply := lsp.EncodeMessage(msg)
	s.writer.Write([]byte(reply))
}
