package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"video-dispatcher/dto"
	"video-dispatcher/service"
)

type recordingService struct {
	batches [][]dto.NotificationRecord
	err     error
}

func (r *recordingService) HandleBatch(_ context.Context, records []dto.NotificationRecord) error {
	r.batches = append(r.batches, records)
	return r.err
}

const body = `{"EventName":"s3:ObjectCreated:Put","Records":[{"s3":{"bucket":{"name":"in-bkt"},"object":{"key":"clip.mov"}}}]}`

func TestBucketEventHandler(t *testing.T) {
	svc := &recordingService{}
	err := BucketEventHandler(context.Background(), amqp.Delivery{Body: []byte(body)}, ServiceDependencies{DispatchService: svc})
	if err != nil {
		t.Fatalf("BucketEventHandler: %v", err)
	}
	if len(svc.batches) != 1 || len(svc.batches[0]) != 1 || svc.batches[0][0] != (dto.NotificationRecord{Bucket: "in-bkt", Key: "clip.mov"}) {
		t.Errorf("batches = %+v", svc.batches)
	}
}

func TestBucketEventHandlerRejectsMalformedBody(t *testing.T) {
	svc := &recordingService{}
	err := BucketEventHandler(context.Background(), amqp.Delivery{Body: []byte("not json")}, ServiceDependencies{DispatchService: svc})
	if err == nil {
		t.Fatal("want error")
	}
	if len(svc.batches) != 0 {
		t.Error("dispatcher must not be called")
	}
}

func TestLambdaHandlerPropagatesFailure(t *testing.T) {
	failure := &service.SubmissionError{SourceURI: "s3://in-bkt/clip.mov", Err: errors.New("rejected")}
	svc := &recordingService{err: failure}
	h := LambdaHandler(ServiceDependencies{DispatchService: svc})

	err := h(context.Background(), events.S3Event{Records: []events.S3EventRecord{
		{S3: events.S3Entity{Bucket: events.S3Bucket{Name: "in-bkt"}, Object: events.S3Object{Key: "clip.mov"}}},
	}})
	if !errors.Is(err, failure) {
		t.Fatalf("err = %v", err)
	}
	if len(svc.batches) != 1 {
		t.Errorf("batches = %d", len(svc.batches))
	}
}

func TestRecordsHandler(t *testing.T) {
	svc := &recordingService{}
	records := []dto.NotificationRecord{{Bucket: "b", Key: "k"}}
	if err := RecordsHandler(context.Background(), records, ServiceDependencies{DispatchService: svc}); err != nil {
		t.Fatal(err)
	}
	if len(svc.batches) != 1 {
		t.Errorf("batches = %d", len(svc.batches))
	}
}

func newTestRouter(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/events", BucketEventHTTPHandler(ServiceDependencies{DispatchService: svc}))
	return r
}

func TestBucketEventHTTPHandler(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "ok", body: body, status: http.StatusOK},
		{name: "malformed", body: "{", status: http.StatusBadRequest},
		{name: "rejected", body: body, err: &service.SubmissionError{Err: errors.New("bad preset")}, status: http.StatusBadGateway},
		{name: "unreachable", body: body, err: &service.ConnectivityError{Op: "CreateJob", Err: errors.New("timeout")}, status: http.StatusBadGateway},
		{name: "other", body: body, err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &recordingService{err: tc.err}
			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			newTestRouter(svc).ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Errorf("status = %d, want %d (%s)", w.Code, tc.status, w.Body.String())
			}
		})
	}
}
