package command

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lonng/onyou/internal/testutil"
	"github.com/lonng/onyou/pkg/errutil"
	"github.com/lonng/onyou/protocol"
	"github.com/spf13/viper"
	"github.com/urfave/cli"
)

var env = new(testutil.Env)

const clubJSON = `{"status":200,"data":{"id":9,"name":"chess","maxNumber":20,"members":[
	{"id":1,"name":"kim","role":"MASTER"},
	{"id":2,"name":"lee","role":"MEMBER"},
	{"id":3,"name":"park","role":"MANAGER"},
	{"id":4,"name":"choi","role":null}]}}`

type runner struct {
	t      *testing.T
	config string
	out    *bytes.Buffer
	errs   *bytes.Buffer
}

func newRunner(t *testing.T) *runner {
	dir := t.TempDir()
	config := filepath.Join(dir, "onyou.toml")
	content := fmt.Sprintf(`[api]
base_url = %q
[auth]
token = "tok"
[database]
driver = "sqlite3"
dsn = %q
`, env.BaseURL, filepath.Join(dir, "onyou.db"))
	if err := os.WriteFile(config, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	viper.Reset()
	return &runner{t: t, config: config, out: &bytes.Buffer{}, errs: &bytes.Buffer{}}
}

func (r *runner) run(args ...string) error {
	app := cli.NewApp()
	app.Name = "onyou"
	app.Writer = r.out
	app.ErrWriter = r.errs
	app.Flags = Flags()
	app.Before = Before
	app.Commands = Commands()

	r.out.Reset()
	r.errs.Reset()
	return app.Run(append([]string{"onyou", "-c", r.config}, args...))
}

func TestRoleEditing(t *testing.T) {
	env.Setup()
	defer env.Teardown()

	var saved []protocol.RoleChangeRequest
	failSave := false
	env.Router.HandleFunc("/api/clubs/9", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, clubJSON)
	}).Methods(http.MethodGet)
	env.Router.HandleFunc("/api/clubs/9/members/role", func(w http.ResponseWriter, r *http.Request) {
		if failSave {
			testutil.JSON(w, http.StatusInternalServerError, map[string]interface{}{"status": 500})
			return
		}
		req := protocol.RoleChangeRequest{}
		testutil.Decode(r, &req)
		saved = append(saved, req)
		testutil.JSON(w, http.StatusOK, map[string]interface{}{"status": 200})
	}).Methods(http.MethodPut)

	r := newRunner(t)

	if err := r.run("role", "set", "9", "2", "manager"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.out.String(), "lee") || !strings.Contains(r.out.String(), "MANAGER") {
		t.Fatalf("unexpected output:\n%s", r.out)
	}

	err := r.run("role", "set", "9", "1", "MANAGER")
	if err == nil {
		t.Fatal("master to manager accepted")
	}
	if errutil.ExitCode(err) != errutil.ExitCode(errutil.ErrIllegalRoleChange) {
		t.Fatalf("exit code %d for %v", errutil.ExitCode(err), err)
	}

	if err := r.run("members", "9"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.out.String(), "MANAGER (2)") || !strings.Contains(r.out.String(), "1 unsaved role change(s)") {
		t.Fatalf("unexpected grid:\n%s", r.out)
	}

	// the staged change survives between runs and fails to save
	failSave = true
	if err := r.run("role", "save", "9"); err == nil {
		t.Fatal("failed save reported success")
	}
	if !strings.Contains(r.errs.String(), "[warning]") {
		t.Fatalf("no warning toast: %s", r.errs)
	}
	if err := r.run("role", "pending", "9"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.out.String(), "lee") || !strings.Contains(r.out.String(), "failed") {
		t.Fatalf("failed change lost:\n%s", r.out)
	}
	if !strings.Contains(r.errs.String(), "last save") {
		t.Fatalf("no failed save warning on reload: %s", r.errs)
	}

	failSave = false
	if err := r.run("role", "save", "9"); err != nil {
		t.Fatal(err)
	}
	if len(saved) != 1 || len(saved[0].Data) != 1 || saved[0].Data[0] != (protocol.RoleChange{UserId: 2, Role: protocol.RoleManager}) {
		t.Fatalf("unexpected saves %s", testutil.Pretty(saved))
	}
	if err := r.run("role", "pending", "9"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.out.String(), "no pending role changes") {
		t.Fatalf("changes left after save:\n%s", r.out)
	}
}

func TestRoleDiscard(t *testing.T) {
	env.Setup()
	defer env.Teardown()

	env.Router.HandleFunc("/api/clubs/9", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, clubJSON)
	})

	r := newRunner(t)
	if err := r.run("role", "set", "9", "4", "master"); err != nil {
		t.Fatal(err)
	}
	if err := r.run("role", "discard", "9"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.out.String(), "1 role change(s) discarded") {
		t.Fatalf("unexpected output:\n%s", r.out)
	}
	if err := r.run("role", "pending", "9"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.out.String(), "no pending role changes") {
		t.Fatalf("unexpected output:\n%s", r.out)
	}
}

func TestClubs(t *testing.T) {
	env.Setup()
	defer env.Teardown()

	env.Router.HandleFunc("/api/clubs", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("showMy") != "1" {
			t.Errorf("unexpected query %v", r.URL.Query())
		}
		switch r.URL.Query().Get("cursor") {
		case "":
			fmt.Fprint(w, `{"status":200,"hasNext":true,"responses":{"content":[{"id":1,"name":"chess","customCursor":"x"}]}}`)
		case "x":
			fmt.Fprint(w, `{"status":200,"hasNext":true,"responses":{"content":[{"id":2,"name":"hiking","customCursor":"y"}]}}`)
		default:
			t.Errorf("page past --pages requested")
		}
	})

	r := newRunner(t)
	if err := r.run("clubs", "--pages", "2", "--my"); err != nil {
		t.Fatal(err)
	}
	out := r.out.String()
	if !strings.Contains(out, "chess") || !strings.Contains(out, "hiking") || !strings.Contains(out, "raise --pages") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestMissingToken(t *testing.T) {
	r := newRunner(t)
	os.WriteFile(r.config, []byte("[api]\nbase_url = \"http://127.0.0.1:1\"\n"), 0644)
	err := r.run("feeds")
	if err == nil || !strings.Contains(err.Error(), "access token") {
		t.Fatalf("got %v", err)
	}
	if errutil.ExitCode(err) != errutil.ExitCode(errutil.ErrTokenNotFound) {
		t.Fatalf("exit code %d", errutil.ExitCode(err))
	}
}
