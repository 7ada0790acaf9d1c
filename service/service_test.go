package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert/types"
	"github.com/aws/smithy-go"
	"gorm.io/gorm"
	"video-dispatcher/dto"
	"video-dispatcher/entities"
)

// fakeMediaConvert records every CreateJob call and fails the calls listed in
// failAt (zero-based).
type fakeMediaConvert struct {
	mu       sync.Mutex
	calls    []*mediaconvert.CreateJobInput
	failAt   map[int]error
	inFlight int
	overlap  bool
}

func (f *fakeMediaConvert) CreateJob(_ context.Context, params *mediaconvert.CreateJobInput, _ ...func(*mediaconvert.Options)) (*mediaconvert.CreateJobOutput, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > 1 {
		f.overlap = true
	}
	idx := len(f.calls)
	f.calls = append(f.calls, params)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if err, ok := f.failAt[idx]; ok {
		return nil, err
	}
	return &mediaconvert.CreateJobOutput{Job: &types.Job{
		Id:     aws.String(fmt.Sprintf("job-%d", idx)),
		Status: types.JobStatusSubmitted,
	}}, nil
}

func (f *fakeMediaConvert) fileInputs() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, aws.ToString(c.Settings.Inputs[0].FileInput))
	}
	return out
}

type fakeRepo struct {
	saved []*entities.Submission
	err   error
}

func (r *fakeRepo) GetDB() *gorm.DB { return nil }
func (r *fakeRepo) Migrate(_ context.Context) error { return nil }
func (r *fakeRepo) SaveSubmission(_ context.Context, s *entities.Submission) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, s)
	return nil
}
func (r *fakeRepo) FindSubmissionsByKey(_ context.Context, bucket, key string) ([]*entities.Submission, error) {
	var out []*entities.Submission
	for _, s := range r.saved {
		if s.Bucket == bucket && s.ObjectKey == key {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestHandleBatchSingleRecord(t *testing.T) {
	mc := &fakeMediaConvert{}
	svc := NewService(mc, testRole, nil)

	err := svc.HandleBatch(context.Background(), []dto.NotificationRecord{{Bucket: "in-bkt", Key: "clip.mov"}})
	if err != nil {
		t.Fatalf("HandleBatch: %v", err)
	}
	if len(mc.calls) != 1 {
		t.Fatalf("CreateJob calls = %d, want 1", len(mc.calls))
	}

	req := mc.calls[0]
	if got := aws.ToString(req.Settings.Inputs[0].FileInput); got != "s3://in-bkt/clip.mov" {
		t.Errorf("file input = %q", got)
	}
	group := req.Settings.OutputGroups[0]
	if got := aws.ToString(group.OutputGroupSettings.FileGroupSettings.Destination); got != "s3://in-bkt/output/" {
		t.Errorf("destination = %q", got)
	}
	if len(group.Outputs) != 2 ||
		aws.ToString(group.Outputs[0].NameModifier) != "_Generic720" ||
		aws.ToString(group.Outputs[1].NameModifier) != "_Generic1080" {
		t.Errorf("outputs = %+v", group.Outputs)
	}
}

func TestHandleBatchPreservesOrderSequentially(t *testing.T) {
	mc := &fakeMediaConvert{}
	svc := NewService(mc, testRole, nil)

	records := []dto.NotificationRecord{
		{Bucket: "b1", Key: "first.mov"},
		{Bucket: "b2", Key: "second.mov"},
		{Bucket: "b1", Key: "third.mov"},
	}
	if err := svc.HandleBatch(context.Background(), records); err != nil {
		t.Fatalf("HandleBatch: %v", err)
	}

	want := []string{"s3://b1/first.mov", "s3://b2/second.mov", "s3://b1/third.mov"}
	got := mc.fileInputs()
	if len(got) != len(want) {
		t.Fatalf("calls = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
	if mc.overlap {
		t.Error("CreateJob calls overlapped")
	}
}

func TestHandleBatchEmpty(t *testing.T) {
	mc := &fakeMediaConvert{}
	svc := NewService(mc, testRole, nil)

	if err := svc.HandleBatch(context.Background(), nil); err != nil {
		t.Fatalf("HandleBatch: %v", err)
	}
	if len(mc.calls) != 0 {
		t.Errorf("calls = %d, want 0", len(mc.calls))
	}
}

func TestHandleBatchAbortsOnFirstFailure(t *testing.T) {
	rejected := &smithy.GenericAPIError{Code: "ForbiddenException", Message: "role cannot be assumed"}
	mc := &fakeMediaConvert{failAt: map[int]error{0: rejected}}
	repo := &fakeRepo{}
	svc := NewService(mc, testRole, repo)

	err := svc.HandleBatch(context.Background(), []dto.NotificationRecord{
		{Bucket: "in-bkt", Key: "one.mov"},
		{Bucket: "in-bkt", Key: "two.mov"},
	})

	var submissionErr *SubmissionError
	if !errors.As(err, &submissionErr) {
		t.Fatalf("want SubmissionError, got %v", err)
	}
	if len(mc.calls) != 1 {
		t.Errorf("calls = %d, second record must not be attempted", len(mc.calls))
	}
	if len(repo.saved) != 0 {
		t.Errorf("saved = %d, want 0", len(repo.saved))
	}
}

func TestHandleBatchStopsMidBatch(t *testing.T) {
	mc := &fakeMediaConvert{failAt: map[int]error{1: errors.New("connection reset by peer")}}
	svc := NewService(mc, testRole, nil)

	err := svc.HandleBatch(context.Background(), []dto.NotificationRecord{
		{Bucket: "b", Key: "1"},
		{Bucket: "b", Key: "2"},
		{Bucket: "b", Key: "3"},
	})

	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("want ConnectivityError, got %v", err)
	}
	if len(mc.calls) != 2 {
		t.Errorf("calls = %d, want 2", len(mc.calls))
	}
}

func TestHandleBatchRecordsSubmissions(t *testing.T) {
	mc := &fakeMediaConvert{}
	repo := &fakeRepo{}
	svc := NewService(mc, testRole, repo)

	err := svc.HandleBatch(context.Background(), []dto.NotificationRecord{
		{Bucket: "in-bkt", Key: "clip.mov"},
		{Bucket: "in-bkt", Key: "other.mov"},
	})
	if err != nil {
		t.Fatalf("HandleBatch: %v", err)
	}

	found, _ := repo.FindSubmissionsByKey(context.Background(), "in-bkt", "clip.mov")
	if len(found) != 1 {
		t.Fatalf("submissions for clip.mov = %d", len(found))
	}
	s := found[0]
	if s.JobID != "job-0" || s.Status != string(types.JobStatusSubmitted) || s.SourceURI != "s3://in-bkt/clip.mov" {
		t.Errorf("submission = %+v", s)
	}
}

func TestHandleBatchLedgerFailureDoesNotFailBatch(t *testing.T) {
	mc := &fakeMediaConvert{}
	svc := NewService(mc, testRole, &fakeRepo{err: errors.New("database is down")})

	err := svc.HandleBatch(context.Background(), []dto.NotificationRecord{
		{Bucket: "in-bkt", Key: "a.mov"},
		{Bucket: "in-bkt", Key: "b.mov"},
	})
	if err != nil {
		t.Fatalf("HandleBatch: %v", err)
	}
	if len(mc.calls) != 2 {
		t.Errorf("calls = %d, want 2", len(mc.calls))
	}
}
