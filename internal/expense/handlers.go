package expense

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/unigasto/unigasto-server/internal/parsing"
)

// writeJSON writes a JSON response with CORS headers set
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeJSONError writes an error response without leaking internal detail
func writeJSONError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"error": message})
}

// handleScanReceipt runs the receipt scanning pipeline on one uploaded
// image. The multipart body is streamed: the first part on field "file" is
// the image, every other file part is drained and ignored.
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	reader, err := r.MultipartReader()
	if err != nil {
		slog.Error("Error reading multipart request", "error", err)
		writeJSONError(w, "Invalid multipart request", http.StatusBadRequest)
		return
	}

	var (
		fileData    []byte
		filename    string
		contentType string
		fileFound   bool
		badType     bool
	)

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Error("Error reading multipart body", "error", err)
			writeJSONError(w, "Malformed multipart body", http.StatusBadRequest)
			return
		}

		// A plain text field named "file" carries no filename and is not
		// an upload; only a real file part claims the slot.
		if fileFound || part.FormName() != "file" || part.FileName() == "" {
			// Not ours; drain so the stream can continue
			io.Copy(io.Discard, part)
			part.Close()
			continue
		}
		fileFound = true

		filename = part.FileName()
		contentType = part.Header.Get("Content-Type")
		if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
			slog.Warn("Unsupported upload type", "filename", filename, "content_type", contentType)
			badType = true
			io.Copy(io.Discard, part)
			part.Close()
			continue
		}

		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			slog.Error("Error reading file part", "filename", filename, "error", err)
			writeJSONError(w, "Error reading uploaded file", http.StatusBadRequest)
			return
		}
		fileData = data
	}

	if badType {
		writeJSONError(w, "Only images are allowed", http.StatusBadRequest)
		return
	}
	if !fileFound {
		writeJSONError(w, "No file provided", http.StatusBadRequest)
		return
	}

	items, err := s.service.ScanReceipt(filename, fileData, contentType)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFileType) {
			writeJSONError(w, "Only images are allowed", http.StatusBadRequest)
			return
		}
		slog.Error("Error scanning receipt", "filename", filename, "error", err)
		writeJSONError(w, "Error processing image", http.StatusInternalServerError)
		return
	}

	response := ScanResponse{Items: items}
	if len(items) == 0 {
		// Empty is a valid outcome, not an error
		response.Items = []parsing.ExpenseItem{}
		response.Message = "no expenses found"
	}
	writeJSON(w, http.StatusOK, response)
}

// handleListTransactions returns all transactions, newest first
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.service.ListTransactions()
	if err != nil {
		slog.Error("Error listing transactions", "error", err)
		writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

// handleCreateTransaction stores a new transaction
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var transaction Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := s.service.CreateTransaction(&transaction)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateTransaction replaces an existing transaction
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeJSONError(w, "Transaction ID required", http.StatusBadRequest)
		return
	}

	var transaction Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	transaction.ID = id

	updated, err := s.service.UpdateTransaction(&transaction)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSONError(w, "Transaction not found", http.StatusNotFound)
			return
		}
		slog.Error("Error updating transaction", "id", id, "error", err)
		writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteTransaction deletes a transaction
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeJSONError(w, "Transaction ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteTransaction(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSONError(w, "Transaction not found", http.StatusNotFound)
			return
		}
		slog.Error("Error deleting transaction", "id", id, "error", err)
		writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetSummary returns the derived balance and budget usage
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.GetSummary()
	if err != nil {
		slog.Error("Error computing summary", "error", err)
		writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleGetSettings returns the stored settings
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.service.GetSettings()
	if err != nil {
		slog.Error("Error getting settings", "error", err)
		writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateSettings stores new budget and savings figures
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := s.service.UpdateSettings(&settings)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleListCategories returns the category table
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Categories())
}

// handleListNotifications returns all notifications, newest first
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.service.ListNotifications()
	if err != nil {
		slog.Error("Error listing notifications", "error", err)
		writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// handleMarkNotificationRead marks one notification as read
func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeJSONError(w, "Notification ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.MarkNotificationRead(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSONError(w, "Notification not found", http.StatusNotFound)
			return
		}
		slog.Error("Error marking notification read", "id", id, "error", err)
		writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMarkAllNotificationsRead marks every notification as read
func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := s.service.MarkAllNotificationsRead(); err != nil {
		slog.Error("Error marking notifications read", "error", err)
		writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
