package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/services"
)

// LoginData represents the data passed to the login template
type LoginData struct {
	Username  string
	Error     string
	Usernames []string
	Password  string
}

// LoginHandler serves the login form and signs users in
type LoginHandler struct {
	template *template.Template
	auth     services.AuthService
	password string
	log      logrus.FieldLogger
}

// NewLoginHandler creates a new login handler. password is shown in the
// credentials hint.
func NewLoginHandler(auth services.AuthService, password string, log logrus.FieldLogger) (*LoginHandler, error) {
	tmpl, err := template.New("login.html").ParseFS(templateFS, "templates/login.html")
	if err != nil {
		return nil, err
	}

	return &LoginHandler{
		template: tmpl,
		auth:     auth,
		password: password,
		log:      log,
	}, nil
}

// ServeHTTP handles GET and POST /
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		data := LoginData{}
		if from := r.URL.Query().Get("from"); from != "" {
			data.Error = fmt.Sprintf("Epic sadface: You can only access '/%s' when you are logged in.", from)
		}
		h.render(w, data)
	case http.MethodPost:
		h.login(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LoginHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("user-name")
	password := r.PostForm.Get("password")

	id, err := h.auth.Login(username, password)
	if err != nil {
		h.log.WithField("user", username).WithError(err).Info("login refused")
		h.render(w, LoginData{Username: username, Error: err.Error()})
		return
	}

	h.log.WithField("user", username).Info("login succeeded")
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}

func (h *LoginHandler) render(w http.ResponseWriter, data LoginData) {
	data.Usernames = h.auth.Usernames()
	data.Password = h.password
	if err := h.template.Execute(w, data); err != nil {
		h.log.WithError(err).Error("failed to render login page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
