package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/traffichub/internal/client/client"
	"github.com/dmitrijs2005/traffichub/internal/client/config"
	"github.com/dmitrijs2005/traffichub/internal/client/evidence"
	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/client/session"
	"github.com/dmitrijs2005/traffichub/internal/client/views"
	"github.com/dmitrijs2005/traffichub/internal/logging"
	"golang.org/x/term"
)

// Session is what the shell needs from the session store.
type Session interface {
	views.SessionStore
	gate.Authenticator
	Role() string
}

// screen is the part every mounted view has in common.
type screen interface {
	Status() views.Status
	Message() string
	RedirectPending() bool
	Close()
}

type App struct {
	api     client.Client
	session Session
	gate    *gate.Gate
	sink    evidence.Sink
	log     logging.Logger
	deps    views.Deps

	in         *bufio.Reader
	out        io.Writer
	readSecret func() (string, error)

	nav     *navigator
	current gate.View
	active  screen
	history []gate.View
	// username is remembered from the last successful sign in for the prompt.
	username string
	// redirecting is set while a view-raised navigation is followed.
	redirecting bool

	db *sql.DB
}

// Options wires an App from ready-made parts. NewApp builds them from config.
type Options struct {
	API     client.Client
	Session Session
	Sink    evidence.Sink
	Log     logging.Logger

	In  io.Reader
	Out io.Writer
	// Terminal reads passwords without echo from stdin.
	Terminal bool

	RedirectDelay time.Duration
	LookupDelay   time.Duration
}

func New(o Options) *App {
	if o.Log == nil {
		o.Log = logging.Discard()
	}
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}

	a := &App{
		api:     o.API,
		session: o.Session,
		gate:    gate.New(o.Session),
		sink:    o.Sink,
		log:     o.Log,
		in:      bufio.NewReader(o.In),
		out:     o.Out,
		nav:     newNavigator(o.Log),
	}
	a.deps = views.Deps{
		API:           o.API,
		Session:       o.Session,
		Nav:           a.nav,
		Log:           o.Log,
		RedirectDelay: o.RedirectDelay,
		LookupDelay:   o.LookupDelay,
	}

	if o.Terminal {
		a.readSecret = func() (string, error) { return GetPassword(a.out) }
	} else {
		a.readSecret = func() (string, error) { return GetSimpleText(a.in, "Enter password:", a.out) }
	}
	return a
}

// NewApp opens the session database, restores the session and builds the API
// client and evidence sink described by cfg.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := session.NewStore(db, log)
	store.Load(ctx)

	api := client.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, store, client.WithLogger(log))

	sink, err := evidence.NewSink(ctx, cfg.EvidenceDir, evidence.S3Options{
		Bucket:    cfg.EvidenceBucket,
		Region:    cfg.EvidenceRegion,
		Endpoint:  cfg.EvidenceEndpoint,
		AccessKey: cfg.EvidenceAccessKey,
		SecretKey: cfg.EvidenceSecretKey,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("evidence sink: %w", err)
	}

	a := New(Options{
		API:           api,
		Session:       store,
		Sink:          sink,
		Log:           log,
		Terminal:      term.IsTerminal(int(os.Stdin.Fd())),
		RedirectDelay: cfg.RedirectDelay,
		LookupDelay:   cfg.LookupDebounce,
	})
	a.db = db
	return a, nil
}

// Run shows the start view and runs the REPL until exit, EOF or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to Traffic Hub (type 'help' for commands)")
	a.open(ctx, gate.ViewLanding, nil)
	a.runREPL(ctx)
}

// Close unmounts the current view and releases the session database.
func (a *App) Close() error {
	if a.active != nil {
		a.active.Close()
		a.active = nil
	}
	if a.db != nil {
		err := a.db.Close()
		a.db = nil
		return err
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// ask reads one answer; EOF and read errors count as an empty answer.
func (a *App) ask(prompt string) string {
	s, err := GetSimpleText(a.in, prompt, a.out)
	if err != nil {
		return ""
	}
	return s
}

func (a *App) confirm(prompt string) bool {
	return GetConfirmation(a.in, prompt, a.out)
}
