package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/akosarev/taskvault/internal/common"
	sc "github.com/akosarev/taskvault/internal/server/config"
	"github.com/akosarev/taskvault/internal/server/models"
	"github.com/akosarev/taskvault/internal/server/repositories/repomanager"
	"github.com/akosarev/taskvault/internal/server/repositories/tasks"
)

// seams for the AWS SDK, swapped out in tests
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// AttachmentUpload is what a client needs to push a file to object storage:
// the metadata row id and a presigned PUT URL.
type AttachmentUpload struct {
	FileID     string
	StorageKey string
	URL        string
}

// AttachmentLink describes a stored attachment. URL is a presigned GET link,
// empty while the upload is still pending.
type AttachmentLink struct {
	FileID     string
	StorageKey string
	Status     string
	URL        string
}

// TaskService provides owner-scoped operations on tasks and their file
// attachments. Every method takes the acting user's id and can never observe
// or modify another user's data.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewTaskService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// GetRandomStorageKey returns a collision-free object key, bucketed by date
// so storage listings stay browsable.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("attachments/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Create persists a new task for the user. The text must be non-blank.
func (s *TaskService) Create(ctx context.Context, userID, text string) (*models.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrorValidation
	}

	task := &models.Task{
		ID:        uuid.NewString(),
		CreatorID: userID,
		Text:      text,
	}
	if err := s.repomanager.Tasks(s.db).Create(ctx, task); err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	return s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
}

func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).GetByID(ctx, userID, taskID)
}

// Update changes the task's text and/or completed flag. Completing a task
// stamps its completion time, un-completing clears it; both happen in the
// repository so the pair can never drift apart.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, upd tasks.TaskUpdate) (*models.Task, error) {
	if upd.Text != nil && strings.TrimSpace(*upd.Text) == "" {
		return nil, common.ErrorValidation
	}
	if upd.Text == nil && upd.Completed == nil {
		return nil, common.ErrorValidation
	}
	return s.repomanager.Tasks(s.db).Update(ctx, userID, taskID, upd)
}

// Delete removes the task and returns its last state.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).Delete(ctx, userID, taskID)
}

func (s *TaskService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// GetPresignedPutUrl mints an upload URL for a fresh storage key.
func (s *TaskService) GetPresignedPutUrl(ctx context.Context) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.PresignValidityDuration))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// GetPresignedGetUrl mints a download URL for an existing storage key.
func (s *TaskService) GetPresignedGetUrl(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.PresignValidityDuration))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// RequestAttachmentUpload registers a pending attachment on the task and
// returns a presigned PUT URL for the client to upload the bytes directly to
// object storage. The task must belong to the user.
func (s *TaskService) RequestAttachmentUpload(ctx context.Context, userID, taskID string) (*AttachmentUpload, error) {
	if _, err := s.repomanager.Tasks(s.db).GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	key, url, err := s.GetPresignedPutUrl(ctx)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	file := &models.TaskFile{
		ID:           uuid.NewString(),
		TaskID:       taskID,
		UserID:       userID,
		StorageKey:   key,
		UploadStatus: models.UploadStatusPending,
	}
	if err := s.repomanager.Files(s.db).Create(ctx, file); err != nil {
		return nil, fmt.Errorf("error registering attachment: %w", err)
	}

	return &AttachmentUpload{FileID: file.ID, StorageKey: key, URL: url}, nil
}

// CompleteAttachmentUpload marks the attachment as uploaded once the client
// reports the PUT succeeded. The file must hang off the given task; a file id
// addressed through some other task of the same user is treated as absent.
func (s *TaskService) CompleteAttachmentUpload(ctx context.Context, userID, taskID, fileID string) error {
	err := s.repomanager.Files(s.db).UpdateStatus(ctx, userID, taskID, fileID, models.UploadStatusCompleted)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error completing attachment: %w", err)
	}
	return nil
}

// ListAttachments returns the task's attachments with presigned GET links for
// the ones whose upload finished.
func (s *TaskService) ListAttachments(ctx context.Context, userID, taskID string) ([]*AttachmentLink, error) {
	if _, err := s.repomanager.Tasks(s.db).GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	stored, err := s.repomanager.Files(s.db).ListByTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	result := make([]*AttachmentLink, 0, len(stored))
	for _, f := range stored {
		link := &AttachmentLink{
			FileID:     f.ID,
			StorageKey: f.StorageKey,
			Status:     f.UploadStatus,
		}
		if f.UploadStatus == models.UploadStatusCompleted {
			url, err := s.GetPresignedGetUrl(ctx, f.StorageKey)
			if err != nil {
				return nil, fmt.Errorf("error presigning download: %w", err)
			}
			link.URL = url
		}
		result = append(result, link)
	}

	return result, nil
}
