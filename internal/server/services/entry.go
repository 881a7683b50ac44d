package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
	"github.com/dmitrijs2005/zkvault/internal/logging"
	"github.com/dmitrijs2005/zkvault/internal/rpc"
	sc "github.com/dmitrijs2005/zkvault/internal/server/config"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/dmitrijs2005/zkvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	MaxLabelLength = 256
	// MaxCiphertextSize bounds a single sealed entry, in bytes before hex.
	MaxCiphertextSize = 1 << 20
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	nowFunc = time.Now
)

// ExportResult describes an uploaded export document.
type ExportResult struct {
	Key       string
	URL       string
	Count     int
	ExpiresAt time.Time
}

// EntryService stores sealed entries. It validates envelope shape but never
// holds a key able to open them.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
}

func NewEntryService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config, logger logging.Logger) *EntryService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &EntryService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		logger:      logger,
	}
}

func validateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("%w: label is empty", common.ErrorValidation)
	}
	if !utf8.ValidString(label) || utf8.RuneCountInString(label) > MaxLabelLength {
		return fmt.Errorf("%w: label must be valid UTF-8 of at most %d characters", common.ErrorValidation, MaxLabelLength)
	}
	return nil
}

func validateHexField(name, v string, size int) error {
	b, err := hex.DecodeString(v)
	if err != nil {
		return fmt.Errorf("%w: %s is not valid hex", common.ErrorValidation, name)
	}
	if size > 0 && len(b) != size {
		return fmt.Errorf("%w: %s must be %d bytes", common.ErrorValidation, name, size)
	}
	return nil
}

func validateEnvelope(ciphertext, nonce, authTag string) error {
	if ciphertext == "" {
		return fmt.Errorf("%w: ciphertext is empty", common.ErrorValidation)
	}
	if len(ciphertext) > 2*MaxCiphertextSize {
		return fmt.Errorf("%w: ciphertext is too large", common.ErrorValidation)
	}
	if err := validateHexField("ciphertext", ciphertext, 0); err != nil {
		return err
	}
	if err := validateHexField("nonce", nonce, cryptox.NonceSize); err != nil {
		return err
	}
	return validateHexField("authTag", authTag, cryptox.TagSize)
}

// Create stores a new sealed entry for userID. A label already in use
// yields common.ErrorAlreadyExists.
func (s *EntryService) Create(ctx context.Context, userID, label, ciphertext, nonce, authTag string) (*models.Entry, error) {
	if err := validateLabel(label); err != nil {
		return nil, err
	}
	if err := validateEnvelope(ciphertext, nonce, authTag); err != nil {
		return nil, err
	}

	e, err := s.repomanager.Entries(s.db).Create(ctx, &models.Entry{
		UserID:     userID,
		Label:      label,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		AuthTag:    authTag,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	s.logger.Debug(ctx, "entry created", "user_id", userID, "entry_id", e.ID)
	return e, nil
}

// List returns the user's labels with timestamps, without envelopes.
func (s *EntryService) List(ctx context.Context, userID string) ([]*models.Entry, error) {
	items, err := s.repomanager.Entries(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return items, nil
}

// Get returns one entry with its envelope.
func (s *EntryService) Get(ctx context.Context, userID, label string) (*models.Entry, error) {
	if err := validateLabel(label); err != nil {
		return nil, err
	}
	e, err := s.repomanager.Entries(s.db).Get(ctx, userID, label)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting entry: %w", err)
	}
	return e, nil
}

// Update replaces the envelope of an existing entry.
func (s *EntryService) Update(ctx context.Context, userID, label, ciphertext, nonce, authTag string) (*models.Entry, error) {
	if err := validateLabel(label); err != nil {
		return nil, err
	}
	if err := validateEnvelope(ciphertext, nonce, authTag); err != nil {
		return nil, err
	}

	e, err := s.repomanager.Entries(s.db).Update(ctx, &models.Entry{
		UserID:     userID,
		Label:      label,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		AuthTag:    authTag,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating entry: %w", err)
	}
	return e, nil
}

// Delete removes an entry.
func (s *EntryService) Delete(ctx context.Context, userID, label string) error {
	if err := validateLabel(label); err != nil {
		return err
	}
	if err := s.repomanager.Entries(s.db).Delete(ctx, userID, label); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error deleting entry: %w", err)
	}
	return nil
}

// ExportStorageKey returns a fresh object key for an export of userID.
func ExportStorageKey(userID string, t time.Time) string {
	return fmt.Sprintf("exports/%s/%04d/%02d/%02d/%s.json", userID, t.Year(), t.Month(), t.Day(), uuid.New())
}

// Export uploads every sealed entry of userID, together with the user's
// salt, as a rpc.ExportDocument and returns a presigned download URL.
func (s *EntryService) Export(ctx context.Context, userID string) (*ExportResult, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	items, err := s.repomanager.Entries(s.db).ListWithEnvelopes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}

	now := nowFunc().UTC()
	doc := &rpc.ExportDocument{
		Version:    rpc.ExportVersion,
		ExportedAt: now,
		Salt:       user.Salt,
		Entries:    make([]*rpc.ExportedEntry, 0, len(items)),
	}
	for _, e := range items {
		doc.Entries = append(doc.Entries, &rpc.ExportedEntry{
			Label:     e.Label,
			Envelope:  &rpc.Envelope{Ciphertext: e.Ciphertext, Nonce: e.Nonce, AuthTag: e.AuthTag},
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		})
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error encoding export: %w", err)
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := ExportStorageKey(userID, now)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &key,
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
	}); err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	validity := s.config.ExportURLValidity
	if validity <= 0 {
		validity = 15 * time.Minute
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	s.logger.Info(ctx, "export uploaded", "user_id", userID, "count", len(items), "key", key)

	return &ExportResult{
		Key:       key,
		URL:       req.URL,
		Count:     len(items),
		ExpiresAt: now.Add(validity),
	}, nil
}

func (s *EntryService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}
