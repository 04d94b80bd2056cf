package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/slack-go/slack"

	"github.com/igotm1lk/slackbot/internal/config"
	"github.com/igotm1lk/slackbot/internal/runner"
)

// Handler terminates the Slack slash-command gateway: it verifies the request
// signature, parses the command, acks within Slack's deadline and hands the
// actual work to a detached goroutine.
type Handler struct {
	cfg    *config.Config
	runner *runner.Runner
	log    *slog.Logger
}

func NewHandler(cfg *config.Config, r *runner.Runner, log *slog.Logger) *Handler {
	return &Handler{cfg: cfg, runner: r, log: log}
}

func (h *Handler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sv, err := slack.NewSecretsVerifier(r.Header, h.cfg.SlackSigningSecret)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if _, err := sv.Write(body); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := sv.Ensure(); err != nil {
		h.log.Warn("rejected request with bad signature", "remote", r.RemoteAddr)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	// Missing API key is surfaced to the user before any run is attempted.
	if h.cfg.PagespeedAPIKey == "" {
		respondEphemeral(w, "The PageSpeed API key is not configured. Set PAGESPEED_API_KEY and restart the bot.")
		return
	}

	req, err := runner.ParseCommand(cmd.Text)
	if err != nil {
		var vErr *runner.ValidationError
		if errors.As(err, &vErr) {
			respondEphemeral(w, vErr.Message)
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	h.log.Info("command accepted", "user", cmd.UserID, "channel", cmd.ChannelID, "text", cmd.Text)

	// Ack now; runs happen after the gateway deadline. WithoutCancel keeps
	// trace propagation while detaching from the request lifetime.
	go h.runner.Execute(context.WithoutCancel(r.Context()), req, cmd.ChannelID)

	plural := ""
	if req.Count > 1 {
		plural = "s"
	}
	respondEphemeral(w, fmt.Sprintf("Running %d PageSpeed test%s (%s) against %s — results will follow here.",
		req.Count, plural, req.Strategy, req.URL))
}

func respondEphemeral(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"response_type": "ephemeral",
		"text":          text,
	})
}
