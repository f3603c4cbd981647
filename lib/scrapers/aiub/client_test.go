package aiub

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"aiubportal-backend/lib/telemetry"
)

// newTestClient spins up a fake portal and a client pointed at it.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/aiub")
	t.Cleanup(cleanup)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

// newAuthenticatedClient logs a client into a fully wired fake portal.
func newAuthenticatedClient(t *testing.T) *Client {
	portal := newFakePortal("22-00000-1", "hunter2")
	client := newTestClient(t, portal)

	outcome := client.Login(context.Background(), "22-00000-1", "hunter2")
	if outcome.Status != StatusAuthenticated {
		t.Fatalf("expected login to succeed, got %s", outcome.Status)
	}
	return client
}

// fakePortal implements the portal's login surface: a form POST at
// the root that answers 200 for every outcome and signals success
// only through where it redirects.
type fakePortal struct {
	mux      *http.ServeMux
	username string
	password string

	// when set, the first login attempt demands a captcha with this id
	captchaId   string
	captchaCode string

	// when set, successful logins land on the evaluation lock page
	evaluationPending bool

	sessionCookie string
}

func newFakePortal(username, password string) *fakePortal {
	p := &fakePortal{
		mux:           http.NewServeMux(),
		username:      username,
		password:      password,
		sessionCookie: "portal-session-1",
	}
	p.mux.HandleFunc("POST /{$}", p.handleLogin)
	p.mux.HandleFunc("GET /Student", p.handleStudent)
	p.mux.HandleFunc("GET /Student/Tpe/Start", p.handleEvaluation)
	p.mux.HandleFunc("GET /Student/Curriculum", p.authPage(curriculumIndexPageTest))
	p.mux.HandleFunc("GET /Common/Curriculum", p.handleCurriculumCourses)
	p.mux.HandleFunc("GET /Student/GradeReport/ByCurriculum", p.authPage(gradeReportPageTest))
	p.mux.HandleFunc("GET /Student/Registration", p.handleRegistration)
	return p
}

func (p *fakePortal) authPage(page []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !p.authenticated(r) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		w.Write(page)
	}
}

func (p *fakePortal) handleCurriculumCourses(w http.ResponseWriter, r *http.Request) {
	if !p.authenticated(r) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	switch r.URL.Query().Get("ID") {
	case "7":
		w.Write(curriculumCsPageTest)
	case "9":
		w.Write(curriculumMathPageTest)
	default:
		w.Write([]byte("<html><body>unknown curriculum</body></html>"))
	}
}

func (p *fakePortal) handleRegistration(w http.ResponseWriter, r *http.Request) {
	if !p.authenticated(r) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if r.URL.Query().Get("q") == "bbb222" {
		w.Write(registrationPageTest)
		return
	}
	// older semesters render without the course table
	w.Write([]byte("<html><body><p>no registration data</p></body></html>"))
}

func (p *fakePortal) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mux.ServeHTTP(w, r)
}

const captchaPage = `<html><body>
<form>
	<div id="captcha" style="display:block">
		<img src="/Captcha/Image?c=1" />
	</div>
	<input type="hidden" name="CaptchaId" value="%s" />
</form>
</body></html>`

func loginPageWithCaptcha(captchaId string) string {
	return fmt.Sprintf(captchaPage, captchaId)
}

func (p *fakePortal) handleLogin(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if p.captchaId != "" && r.PostFormValue("CaptchaId") != p.captchaId {
		w.Write([]byte(loginPageWithCaptcha(p.captchaId)))
		return
	}
	if p.captchaId != "" && r.PostFormValue("CaptchaCode") != p.captchaCode {
		w.Write([]byte(loginPageWithCaptcha(p.captchaId)))
		return
	}

	if r.PostFormValue("UserName") != p.username || r.PostFormValue("Password") != p.password {
		w.Write([]byte(`<html><body>
			<div id="captcha" style="display: none"><img src="/Captcha/Image?c=1"/></div>
			<p>login failed</p>
		</body></html>`))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ".AIUBPORTAL",
		Value:    p.sessionCookie,
		Path:     "/",
		HttpOnly: true,
	})
	if p.evaluationPending {
		http.Redirect(w, r, "/Student/Tpe/Start", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/Student", http.StatusFound)
}

func (p *fakePortal) authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(".AIUBPORTAL")
	return err == nil && cookie.Value == p.sessionCookie
}

func (p *fakePortal) handleStudent(w http.ResponseWriter, r *http.Request) {
	if !p.authenticated(r) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	w.Write(studentPageTest)
}

func (p *fakePortal) handleEvaluation(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`<html><body>evaluation pending</body></html>`))
}
