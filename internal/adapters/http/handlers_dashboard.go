package web

import (
	"errors"
	"net/http"

	"serene/internal/adapters/http/middleware"
	"serene/internal/application/listutil"
	"serene/internal/application/orchestrators"
	"serene/internal/application/projections"
	"serene/internal/domain/dashboard"
)

// handleDashboard handles GET /dashboard. ?panel= shows a panel for this render only;
// the stored panel changes through /dashboard/command.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFrom(ctx)

	panel, err := stores.Records.Panel(ctx, middleware.VisitorID(ctx))
	if err != nil {
		internalError(w, err)
		return
	}
	if p := dashboard.Panel(r.URL.Query().Get("panel")); p != dashboard.PanelNone && dashboard.Allowed(sess.Role(), p) {
		panel = p
	}

	query := projections.GetDashboardQuery{
		Session:  sess,
		Panel:    panel,
		UserList: listutil.ParseParams(r.URL.Query()),
	}
	result, err := projections.QueryGetDashboard(ctx, query, projections.GetDashboardDeps{Store: stores.Records})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, http.StatusOK, "dashboard.html", result)
}

// handleDashboardCommand handles POST /dashboard/command
func handleDashboardCommand(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		badForm(w, r, err)
		return
	}
	cmd, err := dashboard.ParseCommand(form.Get("command"))
	if err != nil {
		respond(w, r, "/dashboard", "", err)
		return
	}
	runDashboardCommand(w, r, cmd, form.Get("username"), form.Get("email"), form.Get("phone"))
}

// handleUpdateProfile handles POST /profile
func handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		badForm(w, r, err)
		return
	}
	runDashboardCommand(w, r, dashboard.CmdUpdateProfile, "", form.Get("email"), form.Get("phone"))
}

// handleDeleteUser handles POST /admin/users/delete
func handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		badForm(w, r, err)
		return
	}
	runDashboardCommand(w, r, dashboard.CmdDeleteUser, form.Get("username"), "", "")
}

type commandResponse struct {
	Panel   dashboard.Panel `json:"panel"`
	Message string          `json:"message,omitempty"`
}

func runDashboardCommand(w http.ResponseWriter, r *http.Request, cmd dashboard.Command, username, email, phone string) {
	ctx := r.Context()
	input := orchestrators.DashboardCommandInput{
		VisitorID: middleware.VisitorID(ctx),
		Session:   middleware.SessionFrom(ctx),
		Command:   cmd,
		Username:  username,
		Email:     email,
		Phone:     phone,
	}
	deps := orchestrators.DashboardCommandDeps{
		Users:    stores.Records,
		Sessions: stores.Records,
		Panels:   stores.Records,
	}
	res, err := orchestrators.ExecuteDashboardCommand(ctx, input, deps)
	if err != nil {
		next := "/dashboard"
		if errors.Is(err, orchestrators.ErrNotAuthenticated) {
			next = "/login"
		}
		respond(w, r, next, "", err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, commandResponse{Panel: res.View.Active, Message: res.Message})
		return
	}
	if res.Message != "" {
		setFlash(w, Flash{Message: res.Message})
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleChangePassword handles GET (form) and POST (update) for /change-password
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		renderTemplate(w, r, http.StatusOK, "change_password.html", nil)
	case http.MethodPost:
		form, err := formValues(r)
		if err != nil {
			badForm(w, r, err)
			return
		}
		input := orchestrators.ChangePasswordInput{
			Session:         middleware.SessionFrom(r.Context()),
			CurrentPassword: form.Get("current_password"),
			NewPassword:     form.Get("new_password"),
		}
		err = orchestrators.ExecuteChangePassword(r.Context(), input, orchestrators.ChangePasswordDeps{Users: stores.Records})
		if err != nil {
			respond(w, r, "/change-password", "", err)
			return
		}
		respond(w, r, "/dashboard", orchestrators.MsgPasswordChanged, nil)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
