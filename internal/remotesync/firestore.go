package remotesync

import (
	"context"
	"fmt"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"cloud.google.com/go/firestore"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore is the documentStore backed by Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

type FirestoreParams struct {
	ProjectID       string
	CredentialsFile string
	// EmulatorHost is set for local development against the firestore emulator.
	EmulatorHost string
}

func NewFirestoreStore(ctx context.Context, params FirestoreParams) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if params.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(params.CredentialsFile))
	}
	if params.EmulatorHost != "" {
		opts = append(opts, option.WithEndpoint(params.EmulatorHost), option.WithoutAuthentication())
	}

	client, err := firestore.NewClient(ctx, params.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("new firestore client: %w", err)
	}

	return &FirestoreStore{
		client: client,
	}, nil
}

func (s *FirestoreStore) SetMerge(ctx context.Context, path string, fields map[string]interface{}) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "firestore.setMerge")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("document.path", path))

	doc, err := s.doc(path)
	if err != nil {
		return err
	}
	_, err = doc.Set(ctx, fields, firestore.MergeAll)
	return err
}

func (s *FirestoreStore) Get(ctx context.Context, path string, dst interface{}) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "firestore.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("document.path", path))

	doc, err := s.doc(path)
	if err != nil {
		return err
	}
	snap, err := doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrDocumentNotFound
		}
		return err
	}
	return snap.DataTo(dst)
}

func (s *FirestoreStore) Delete(ctx context.Context, path string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "firestore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("document.path", path))

	// deleting a missing document is not an error in firestore
	doc, err := s.doc(path)
	if err != nil {
		return err
	}
	_, err = doc.Delete(ctx)
	return err
}

// doc fails on paths that do not name a document, where the client would
// hand out a nil ref.
func (s *FirestoreStore) doc(path string) (*firestore.DocumentRef, error) {
	doc := s.client.Doc(path)
	if doc == nil {
		return nil, fmt.Errorf("invalid document path [%s]", path)
	}
	return doc, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
