// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes four endpoints under /daily:
//   - POST /daily/new         → start today's round (creates or reuses session)
//   - POST /daily/output      → pick x and receive the target output
//   - POST /daily/guess       → submit a guess for today's formula
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB when the
// round finishes (won or exhausted). The secret is never stored: it is
// rederived from the date key on demand.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mathle/go-server/internal/daily"
	"github.com/mathle/go-server/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily round.
type dailySession struct {
	UserID string
	Start  time.Time
	Sess   *game.Session
	Stored bool // result already written to DB
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/output", dd.handleOutput)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// session finds today's session for uid, if any.
func (d *dailyServer) session(uid, date string) (*dailySession, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ds, ok := d.sessions[uid+"|"+date]
	return ds, ok
}

// -----------------------------------------------------------------------------
// /daily/new

// newRes is returned by /daily/new.
type newRes struct {
	RoundID string `json:"roundId"`
	Date    string `json:"date"`
	State   string `json:"state"`
	Played  bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return RoundID.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	date := daily.DateKey(time.Now())

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(newRes{RoundID: "", Date: date, Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	if ds, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(newRes{RoundID: ds.Sess.ID, Date: date, State: string(ds.Sess.State)})
		return
	}
	ds := &dailySession{
		UserID: uid,
		Start:  time.Now(),
		Sess:   game.NewSession(date),
	}
	d.sessions[key] = ds
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(newRes{RoundID: ds.Sess.ID, Date: date, State: string(ds.Sess.State)})
}

// -----------------------------------------------------------------------------
// /daily/output

// dailyOutputReq is the request payload for /daily/output.
type dailyOutputReq struct {
	RoundID string `json:"roundId"`
	X       int64  `json:"x"`
}

// dailyOutputRes is the response payload for /daily/output.
type dailyOutputRes struct {
	Date   string `json:"date"`
	Target int64  `json:"target"`
	State  string `json:"state"`
}

// handleOutput sets the player's x for today's session and returns the target.
// Resets any prior guesses for the session (same semantics as /round/output).
func (d *dailyServer) handleOutput(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var p dailyOutputReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	date := daily.DateKey(time.Now())
	ds, ok := d.session(uid, date)
	if !ok || ds.Sess.ID != p.RoundID {
		http.Error(w, "no session", http.StatusConflict)
		return
	}

	d.mu.Lock()
	target := ds.Sess.GenerateOutput(p.X)
	state := ds.Sess.State
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyOutputRes{Date: date, Target: target, State: string(state)})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	RoundID string `json:"roundId"`
	Guess   string `json:"guess"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Marks   []game.Mark `json:"marks"`
	State   string      `json:"state"`
	Guesses int         `json:"guesses"`
	Secret  string      `json:"secret,omitempty"`
}

// handleGuess validates and applies a guess for today's daily session.
// - Ensures a valid RoundID and an existing session.
// - Format/grammar errors are reported without consuming the attempt.
// - Persists the result to DB once the round finishes.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if p.RoundID == "" {
		http.Error(w, "invalid", http.StatusBadRequest)
		return
	}

	date := daily.DateKey(time.Now())
	ds, ok := d.session(uid, date)
	if !ok || ds.Sess.ID != p.RoundID {
		http.Error(w, "no session", http.StatusConflict)
		return
	}

	d.mu.Lock()
	marks, state, err := ds.Sess.SubmitGuess(p.Guess)
	guesses := len(ds.Sess.Guesses)
	alreadyStored := ds.Stored
	if err == nil && (state == game.StateWon || state == game.StateExhausted) {
		ds.Stored = true
	}
	d.mu.Unlock()

	if err != nil {
		status := http.StatusBadRequest
		if err == game.ErrNoOutput || err == game.ErrRoundOver {
			status = http.StatusConflict
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, status)
		return
	}

	res := dailyGuessRes{Marks: marks, State: string(state), Guesses: guesses}

	// Persist once, when the round reaches a terminal state.
	if (state == game.StateWon || state == game.StateExhausted) && !alreadyStored {
		elapsed := int(time.Since(ds.Start).Milliseconds())
		if err := d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, Attempts: guesses,
			Won: state == game.StateWon, ElapsedMs: elapsed,
		}); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	if state == game.StateWon || state == game.StateExhausted {
		res.Secret = ds.Sess.SecretTiles
	}
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
