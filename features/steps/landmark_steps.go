//go:build integration

package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"drive-upload-services/api"
	"drive-upload-services/application/recording"
	"drive-upload-services/infrastructure/memdrive"

	"github.com/cucumber/godog"
)

type landmarkContext struct {
	drive  *memdrive.Drive
	rootID string
	now    time.Time
	status int
	body   map[string]string
}

var SharedLandmarkContext = &landmarkContext{}

func InitializeLandmarkScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedLandmarkContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		testCtx.drive = memdrive.New()
		testCtx.rootID = ""
		testCtx.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		testCtx.status = 0
		testCtx.body = nil
		return c, nil
	})

	ctx.Step(`^a recordings root folder$`, testCtx.aRecordingsRootFolder)
	ctx.Step(`^no recordings root folder is configured$`, testCtx.noRecordingsRootFolder)
	ctx.Step(`^the root already has a folder "([^"]*)"$`, testCtx.theRootAlreadyHasAFolder)
	ctx.Step(`^the clock reads "([^"]*)"$`, testCtx.theClockReads)
	ctx.Step(`^I post landmark data:$`, testCtx.iPostLandmarkData)
	ctx.Step(`^the store-data response status should be (\d+)$`, testCtx.theStatusShouldBe)
	ctx.Step(`^the store-data error should be "([^"]*)"$`, testCtx.theErrorShouldBe)
	ctx.Step(`^the uploaded path should be "([^"]*)"$`, testCtx.theUploadedPathShouldBe)
	ctx.Step(`^the root should have (\d+) folders? named "([^"]*)"$`, testCtx.theRootShouldHaveFoldersNamed)
	ctx.Step(`^folder "([^"]*)" should contain (\d+) recordings?$`, testCtx.folderShouldContainRecordings)
	ctx.Step(`^line (\d+) of the stored recording should be "([^"]*)"$`, testCtx.lineOfTheStoredRecordingShouldBe)
}

func (l *landmarkContext) aRecordingsRootFolder() error {
	l.rootID = l.drive.AddFolder("", "Recordings", "")
	return nil
}

func (l *landmarkContext) noRecordingsRootFolder() error {
	l.rootID = ""
	return nil
}

func (l *landmarkContext) theRootAlreadyHasAFolder(name string) error {
	l.drive.AddFolder(l.rootID, name, "")
	return nil
}

func (l *landmarkContext) theClockReads(value string) error {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return err
	}
	l.now = t
	return nil
}

func (l *landmarkContext) iPostLandmarkData(doc *godog.DocString) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := recording.NewService(l.drive, l.rootID, logger, recording.WithClock(func() time.Time { return l.now }))
	router := api.NewLandmarkRouter(svc, logger)

	req := httptest.NewRequest(http.MethodPost, "/store-data", strings.NewReader(doc.Content))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	l.status = rec.Code
	l.body = map[string]string{}
	if err := json.Unmarshal(rec.Body.Bytes(), &l.body); err != nil {
		return fmt.Errorf("failed to decode response %q: %w", rec.Body.String(), err)
	}
	return nil
}

func (l *landmarkContext) theStatusShouldBe(status int) error {
	if l.status != status {
		return fmt.Errorf("expected status %d, got %d (%v)", status, l.status, l.body)
	}
	return nil
}

func (l *landmarkContext) theErrorShouldBe(msg string) error {
	if l.body["error"] != msg {
		return fmt.Errorf("expected error %q, got %q", msg, l.body["error"])
	}
	return nil
}

func (l *landmarkContext) theUploadedPathShouldBe(path string) error {
	if l.body["uploadedPath"] != path {
		return fmt.Errorf("expected uploadedPath %q, got %q", path, l.body["uploadedPath"])
	}
	return nil
}

func (l *landmarkContext) labelFolders(name string) []memdrive.Entry {
	var folders []memdrive.Entry
	for _, e := range l.drive.Children(l.rootID) {
		if e.IsFolder() && e.Name == name {
			folders = append(folders, e)
		}
	}
	return folders
}

func (l *landmarkContext) theRootShouldHaveFoldersNamed(count int, name string) error {
	if got := len(l.labelFolders(name)); got != count {
		return fmt.Errorf("expected %d folders named %q, got %d", count, name, got)
	}
	return nil
}

func (l *landmarkContext) folderShouldContainRecordings(name string, count int) error {
	folders := l.labelFolders(name)
	if len(folders) == 0 {
		return fmt.Errorf("folder %q not found", name)
	}
	if got := len(l.drive.Children(folders[0].ID)); got != count {
		return fmt.Errorf("expected %d recordings in %q, got %d", count, name, got)
	}
	return nil
}

func (l *landmarkContext) lineOfTheStoredRecordingShouldBe(n int, want string) error {
	entry, ok := l.drive.Get(l.body["uploadedFileId"])
	if !ok {
		return fmt.Errorf("stored recording %q not found", l.body["uploadedFileId"])
	}
	lines := strings.Split(string(entry.Content), "\n")
	if n < 1 || n > len(lines) {
		return fmt.Errorf("recording has %d lines", len(lines))
	}
	if lines[n-1] != want {
		return fmt.Errorf("expected line %d to be %q, got %q", n, want, lines[n-1])
	}
	return nil
}
