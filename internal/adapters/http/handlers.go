package web

import (
	"errors"
	"net/http"

	"serene/internal/adapters/http/middleware"
	"serene/internal/application/orchestrators"
	"serene/internal/application/projections"
	"serene/internal/domain/schedule"
	"serene/internal/domain/session"
)

// upcomingLimit is how many upcoming classes the home page lists without JavaScript.
const upcomingLimit = 12

type enquiryForm struct {
	Open  bool
	Class string
	Date  string
	Time  string
}

type registerForm struct {
	Open     bool
	Class    string
	Time     string
	FullName string
	Email    string
	Phone    string
}

type homePage struct {
	Schedule projections.ScheduleResult
	Upcoming []schedule.Event
	Titles   []string
	Journal  []projections.JournalCard
	Enquiry  enquiryForm
	Register registerForm
}

// handleHome handles GET / and renders the schedule, classes, journal and form modals.
func handleHome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sched := projections.QueryGetSchedule(
		projections.GetScheduleQuery{Class: q.Get("class")},
		projections.GetScheduleDeps{Events: stores.Events},
	)

	page := homePage{
		Schedule: sched,
		Upcoming: upcoming(sched.Events, timeNow().Format(schedule.DateLayout), upcomingLimit),
		Titles:   schedule.Titles(),
		Journal:  projections.QueryGetJournal(q.Get("expand")),
	}

	// Selecting a calendar event prefills the enquiry form.
	if date := q.Get("enquire"); date != "" {
		if ev, ok := schedule.Find(stores.Events, date, q.Get("class")); ok {
			page.Enquiry = enquiryForm{Open: true, Class: ev.Title, Date: ev.Date, Time: ev.Time}
		}
	}
	if title := q.Get("register"); title != "" {
		if tpl, ok := schedule.Template(title); ok {
			page.Register = registerForm{Open: true, Class: tpl.Title, Time: tpl.Time}
			if sess := middleware.SessionFrom(r.Context()); sess.State() == session.Authenticated {
				page.Register.Email = sess.CurrentUser.Email
				page.Register.Phone = sess.CurrentUser.Phone
			}
		}
	}

	renderTemplate(w, r, http.StatusOK, "home.html", page)
}

// upcoming returns up to n events dated today or later. Events are in date order.
func upcoming(events []schedule.Event, today string, n int) []schedule.Event {
	out := make([]schedule.Event, 0, n)
	for _, e := range events {
		if e.Date < today {
			continue
		}
		out = append(out, e)
		if len(out) == n {
			break
		}
	}
	return out
}

// handleJournalPost handles GET /journal/{slug}
func handleJournalPost(w http.ResponseWriter, r *http.Request) {
	card, err := projections.QueryGetJournalPost(r.PathValue("slug"))
	if errors.Is(err, projections.ErrPostNotFound) {
		http.NotFound(w, r)
		return
	}
	renderTemplate(w, r, http.StatusOK, "journal_post.html", card)
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		if middleware.SessionFrom(ctx).State() == session.Authenticated {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, http.StatusOK, "login.html", map[string]any{
			"Next": safeNext(r.URL.Query().Get("next"), ""),
		})
	case http.MethodPost:
		form, err := formValues(r)
		if err != nil {
			badForm(w, r, err)
			return
		}
		next := safeNext(form.Get("next"), "/")
		input := orchestrators.LoginInput{
			VisitorID: middleware.VisitorID(ctx),
			Username:  form.Get("username"),
			Password:  form.Get("password"),
		}
		deps := orchestrators.LoginDeps{
			Users:    stores.Records,
			Sessions: stores.Records,
			Panels:   stores.Records,
		}
		sess, err := orchestrators.ExecuteLogin(ctx, input, deps)
		if err != nil {
			respond(w, r, "/login", "", err)
			return
		}
		respond(w, r, next, orchestrators.WelcomeMessage(sess), nil)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleSignup handles GET (form) and POST (create account) for /signup
func handleSignup(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		renderTemplate(w, r, http.StatusOK, "signup.html", nil)
	case http.MethodPost:
		form, err := formValues(r)
		if err != nil {
			badForm(w, r, err)
			return
		}
		input := orchestrators.SignupInput{
			Username: form.Get("username"),
			Password: form.Get("password"),
		}
		err = orchestrators.ExecuteSignup(r.Context(), input, orchestrators.SignupDeps{Users: stores.Records})
		if err != nil {
			respond(w, r, "/signup", "", err)
			return
		}
		respond(w, r, "/login", orchestrators.MsgSignupSuccess, nil)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	deps := orchestrators.LogoutDeps{Sessions: stores.Records, Panels: stores.Records}
	if err := orchestrators.ExecuteLogout(r.Context(), middleware.VisitorID(r.Context()), deps); err != nil {
		internalError(w, err)
		return
	}
	respond(w, r, "/", orchestrators.MsgLogoutSuccess, nil)
}

// handleTheme handles POST /theme
func handleTheme(w http.ResponseWriter, r *http.Request) {
	pref, err := orchestrators.ExecuteToggleTheme(r.Context(), middleware.VisitorID(r.Context()), stores.Records)
	if err != nil {
		internalError(w, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]string{"theme": string(pref), "icon": pref.Icon()})
		return
	}
	if err := r.ParseForm(); err != nil {
		badForm(w, r, err)
		return
	}
	http.Redirect(w, r, safeNext(r.PostForm.Get("next"), "/"), http.StatusSeeOther)
}
