package report

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// AllureReporter buffers one test's steps and writes them as an Allure
// result file on Finish.
type AllureReporter struct {
	recorder

	dir      string
	name     string
	fullName string
	labels   map[string]string
	start    time.Time
}

// NewAllureReporter returns a reporter for the test name writing into dir.
func NewAllureReporter(dir, name string) *AllureReporter {
	r := &AllureReporter{
		recorder: newRecorder(),
		dir:      dir,
		name:     name,
		fullName: name,
		labels:   map[string]string{"framework": "go-test", "language": "go"},
	}
	r.start = r.now()
	return r
}

// Label adds an Allure label such as suite, feature or severity.
func (r *AllureReporter) Label(name, value string) {
	r.mu.Lock()
	r.labels[name] = value
	r.mu.Unlock()
}

func (r *AllureReporter) Step(name string, fn func() error) error {
	_, err := r.run(name, fn)
	return err
}

func (r *AllureReporter) Attach(name, path, mimeType string) {
	r.attach(Attachment{Name: name, Path: path, MimeType: mimeType})
}

type allureStatusDetails struct {
	Message string `json:"message,omitempty"`
}

type allureAttachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type,omitempty"`
}

type allureStep struct {
	Name          string               `json:"name"`
	Status        Status               `json:"status"`
	Stage         string               `json:"stage"`
	StatusDetails *allureStatusDetails `json:"statusDetails,omitempty"`
	Start         int64                `json:"start"`
	Stop          int64                `json:"stop"`
	Steps         []allureStep         `json:"steps,omitempty"`
}

type allureLabel struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type allureResult struct {
	UUID          string               `json:"uuid"`
	HistoryID     string               `json:"historyId"`
	Name          string               `json:"name"`
	FullName      string               `json:"fullName"`
	Status        Status               `json:"status"`
	Stage         string               `json:"stage"`
	StatusDetails *allureStatusDetails `json:"statusDetails,omitempty"`
	Start         int64                `json:"start"`
	Stop          int64                `json:"stop"`
	Steps         []allureStep         `json:"steps"`
	Attachments   []allureAttachment   `json:"attachments"`
	Labels        []allureLabel        `json:"labels"`
}

// Finish copies attachments into the results directory and writes
// <uuid>-result.json. It returns the path of the result file.
func (r *AllureReporter) Finish(status Status) (string, error) {
	steps, atts := r.snapshot()
	stop := r.now()

	id := uuid.NewString()
	res := allureResult{
		UUID:        id,
		HistoryID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte(r.fullName)).String(),
		Name:        r.name,
		FullName:    r.fullName,
		Status:      status,
		Stage:       "finished",
		Start:       r.start.UnixMilli(),
		Stop:        stop.UnixMilli(),
		Steps:       make([]allureStep, 0, len(steps)),
		Attachments: make([]allureAttachment, 0, len(atts)),
	}

	for _, s := range steps {
		if s.Error != "" {
			res.StatusDetails = &allureStatusDetails{Message: s.Error}
			break
		}
	}
	nested, _ := nestSteps(steps, 0)
	res.Steps = append(res.Steps, nested...)

	for _, a := range atts {
		source := uuid.NewString() + "-attachment" + attachmentExt(a)
		if err := copyFile(a.Path, filepath.Join(r.dir, source)); err != nil {
			return "", fmt.Errorf("failed to copy attachment %s: %w", a.Name, err)
		}
		res.Attachments = append(res.Attachments, allureAttachment{
			Name:   a.Name,
			Source: source,
			Type:   a.MimeType,
		})
	}

	r.mu.Lock()
	for name, value := range r.labels {
		res.Labels = append(res.Labels, allureLabel{Name: name, Value: value})
	}
	r.mu.Unlock()

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode allure result: %w", err)
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results dir: %w", err)
	}
	path := filepath.Join(r.dir, id+"-result.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write allure result: %w", err)
	}
	return path, nil
}

func attachmentExt(a Attachment) string {
	if ext := filepath.Ext(a.Path); ext != "" {
		return ext
	}
	if exts, _ := mime.ExtensionsByType(a.MimeType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// nestSteps folds start-ordered steps into a tree. It consumes steps at
// depth or deeper and returns the rest.
func nestSteps(steps []StepResult, depth int) ([]allureStep, []StepResult) {
	var out []allureStep
	for len(steps) > 0 && steps[0].Depth >= depth {
		s := steps[0]
		step := allureStep{
			Name:   s.Name,
			Status: s.Status,
			Stage:  "finished",
			Start:  s.Start.UnixMilli(),
			Stop:   s.Start.Add(s.Duration).UnixMilli(),
		}
		if s.Error != "" {
			step.StatusDetails = &allureStatusDetails{Message: s.Error}
		}
		step.Steps, steps = nestSteps(steps[1:], s.Depth+1)
		out = append(out, step)
	}
	return out, steps
}
