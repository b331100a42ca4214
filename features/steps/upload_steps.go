//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"

	"drive-upload-services/api"
	"drive-upload-services/application/upload"
	"drive-upload-services/infrastructure/config"
	"drive-upload-services/infrastructure/memdrive"

	"github.com/cucumber/godog"
)

type uploadResult struct {
	Name   string  `json:"name"`
	Action string  `json:"action"`
	ID     *string `json:"id"`
	Link   *string `json:"link"`
}

type uploadContext struct {
	drive    *memdrive.Drive
	folderID string
	cfg      *config.Config
	status   int
	results  []uploadResult
	detail   string
}

var SharedUploadContext = &uploadContext{}

func InitializeUploadScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedUploadContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		testCtx.drive = memdrive.New()
		testCtx.folderID = ""
		testCtx.cfg = &config.Config{}
		testCtx.cfg.ApplyDefaults()
		testCtx.status = 0
		testCtx.results = nil
		testCtx.detail = ""
		return c, nil
	})

	ctx.Step(`^an upload folder "([^"]*)"$`, testCtx.anUploadFolder)
	ctx.Step(`^the upload folder is the server default$`, testCtx.theUploadFolderIsTheServerDefault)
	ctx.Step(`^the server default conflict policy is "([^"]*)"$`, testCtx.theServerDefaultConflictPolicyIs)
	ctx.Step(`^the folder already contains "([^"]*)" with content "([^"]*)"$`, testCtx.theFolderAlreadyContains)
	ctx.Step(`^I upload "([^"]*)" with content "([^"]*)" using policy "([^"]*)"$`, testCtx.iUploadWithPolicy)
	ctx.Step(`^I upload "([^"]*)" with content "([^"]*)"$`, testCtx.iUploadWithServerDefaults)
	ctx.Step(`^I upload the files "([^"]*)" using policy "([^"]*)"$`, testCtx.iUploadTheFiles)
	ctx.Step(`^the upload response status should be (\d+)$`, testCtx.theUploadResponseStatusShouldBe)
	ctx.Step(`^the upload error should be "([^"]*)"$`, testCtx.theUploadErrorShouldBe)
	ctx.Step(`^result (\d+) should be "([^"]*)" with action "([^"]*)"$`, testCtx.resultShouldBe)
	ctx.Step(`^result (\d+) should have no id or link$`, testCtx.resultShouldHaveNoIDOrLink)
	ctx.Step(`^the folder should contain exactly "([^"]*)"$`, testCtx.theFolderShouldContainExactly)
	ctx.Step(`^"([^"]*)" in the folder should have content "([^"]*)"$`, testCtx.fileShouldHaveContent)
}

func (u *uploadContext) anUploadFolder(name string) error {
	u.folderID = u.drive.AddFolder("", name, "")
	return nil
}

func (u *uploadContext) theUploadFolderIsTheServerDefault() error {
	u.cfg.Uploads.DefaultFolderID = u.folderID
	return nil
}

func (u *uploadContext) theServerDefaultConflictPolicyIs(policy string) error {
	u.cfg.Uploads.ConflictPolicy = policy
	return nil
}

func (u *uploadContext) theFolderAlreadyContains(name, content string) error {
	u.drive.AddFile(u.folderID, name, "text/plain", []byte(content))
	return nil
}

func (u *uploadContext) iUploadWithPolicy(name, content, policy string) error {
	return u.post(map[string]string{"folder_id": u.folderID, "conflict_policy": policy}, [][2]string{{name, content}})
}

func (u *uploadContext) iUploadWithServerDefaults(name, content string) error {
	return u.post(nil, [][2]string{{name, content}})
}

func (u *uploadContext) iUploadTheFiles(names, policy string) error {
	var files [][2]string
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		files = append(files, [2]string{name, "content of " + name})
	}
	return u.post(map[string]string{"folder_id": u.folderID, "conflict_policy": policy}, files)
}

func (u *uploadContext) post(fields map[string]string, files [][2]string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f[0])
		if err != nil {
			return err
		}
		if _, err := part.Write([]byte(f[1])); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := api.NewUploadRouter(upload.NewService(u.drive, logger), u.cfg, logger)

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body struct {
		Results []uploadResult `json:"results"`
		Detail  string         `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		return fmt.Errorf("failed to decode response %q: %w", rec.Body.String(), err)
	}
	u.status = rec.Code
	u.results = body.Results
	u.detail = body.Detail
	return nil
}

func (u *uploadContext) theUploadResponseStatusShouldBe(status int) error {
	if u.status != status {
		return fmt.Errorf("expected status %d, got %d (detail %q)", status, u.status, u.detail)
	}
	return nil
}

func (u *uploadContext) theUploadErrorShouldBe(detail string) error {
	if u.detail != detail {
		return fmt.Errorf("expected detail %q, got %q", detail, u.detail)
	}
	return nil
}

func (u *uploadContext) result(n int) (uploadResult, error) {
	if n < 1 || n > len(u.results) {
		return uploadResult{}, fmt.Errorf("no result %d, got %d results", n, len(u.results))
	}
	return u.results[n-1], nil
}

func (u *uploadContext) resultShouldBe(n int, name, action string) error {
	r, err := u.result(n)
	if err != nil {
		return err
	}
	if r.Name != name || r.Action != action {
		return fmt.Errorf("expected result %d to be %q/%q, got %q/%q", n, name, action, r.Name, r.Action)
	}
	return nil
}

func (u *uploadContext) resultShouldHaveNoIDOrLink(n int) error {
	r, err := u.result(n)
	if err != nil {
		return err
	}
	if r.ID != nil || r.Link != nil {
		return fmt.Errorf("expected result %d to have null id and link", n)
	}
	return nil
}

func (u *uploadContext) theFolderShouldContainExactly(names string) error {
	var want []string
	for _, n := range strings.Split(names, ",") {
		want = append(want, strings.TrimSpace(n))
	}
	var got []string
	for _, e := range u.drive.Children(u.folderID) {
		got = append(got, e.Name)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected folder to contain %v, got %v", want, got)
	}
	return nil
}

func (u *uploadContext) fileShouldHaveContent(name, content string) error {
	for _, e := range u.drive.Children(u.folderID) {
		if e.Name == name {
			if string(e.Content) != content {
				return fmt.Errorf("expected %q to have content %q, got %q", name, content, e.Content)
			}
			return nil
		}
	}
	return fmt.Errorf("file %q not found", name)
}
