package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicepad/internal/config"
	"invoicepad/internal/domain"
	"invoicepad/internal/port"
	"invoicepad/internal/service"
	"invoicepad/mocks"
)

func testExportFixture() (*mocks.MockSessionService, *domain.Invoice, domain.Totals, uuid.UUID) {
	inv := domain.DefaultInvoice()
	inv.InvoiceNumber = "INV-042"
	inv.LineItems[0].Description = "Consulting"
	inv.LineItems[0].Quantity = "2"
	inv.LineItems[0].Rate = "100"
	totals := domain.Totals{SubTotal: 200, GrandTotal: 200}

	id := uuid.New()
	sessions := new(mocks.MockSessionService)
	sessions.On("Snapshot", mock.Anything, id).Return(&inv, totals, nil)
	return sessions, &inv, totals, id
}

func newExportService(sessions service.SessionService, renderer port.InvoiceRenderer, storage port.ObjectStorage, email port.EmailSender) service.ExportService {
	s3cfg := &config.S3Config{Bucket: "test-bucket", PresignExpiry: 3600}
	exportCfg := &config.ExportConfig{FilenamePrefix: "invoice"}
	return service.NewExportService(sessions, renderer, storage, email, s3cfg, exportCfg)
}

func TestExportService_Export_PDF(t *testing.T) {
	sessions, inv, totals, id := testExportFixture()
	renderer := new(mocks.MockInvoiceRenderer)
	renderer.On("Render", mock.Anything, inv, totals).Return([]byte("%PDF-1.3 fake"), nil)

	svc := newExportService(sessions, renderer, nil, nil)
	export, err := svc.Export(context.Background(), id, domain.ExportFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.3 fake"), export.Data)
	assert.Equal(t, "application/pdf", export.ContentType)
	assert.True(t, strings.HasPrefix(export.Filename, "INV-042_"))
	assert.True(t, strings.HasSuffix(export.Filename, ".pdf"))
	renderer.AssertExpectations(t)
}

func TestExportService_Export_CSV(t *testing.T) {
	sessions, _, _, id := testExportFixture()

	svc := newExportService(sessions, nil, nil, nil)
	export, err := svc.Export(context.Background(), id, domain.ExportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", export.ContentType)
	body := string(export.Data)
	assert.Contains(t, body, "Consulting")
	assert.Contains(t, body, "200.00")
	assert.True(t, strings.HasSuffix(export.Filename, ".csv"))
}

func TestExportService_Export_XLSX(t *testing.T) {
	sessions, _, _, id := testExportFixture()

	svc := newExportService(sessions, nil, nil, nil)
	export, err := svc.Export(context.Background(), id, domain.ExportFormatXLSX)
	require.NoError(t, err)

	assert.NotEmpty(t, export.Data)
	assert.Equal(t, domain.ExportFormatXLSX.ContentType(), export.ContentType)
	assert.True(t, strings.HasSuffix(export.Filename, ".xlsx"))
}

func TestExportService_Export_SessionNotFound(t *testing.T) {
	id := uuid.New()
	sessions := new(mocks.MockSessionService)
	sessions.On("Snapshot", mock.Anything, id).Return(nil, domain.Totals{}, domain.ErrSessionNotFound)

	svc := newExportService(sessions, nil, nil, nil)
	_, err := svc.Export(context.Background(), id, domain.ExportFormatCSV)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestExportService_Export_FallbackFilename(t *testing.T) {
	inv := domain.DefaultInvoice()
	totals := domain.Totals{}
	id := uuid.New()
	sessions := new(mocks.MockSessionService)
	sessions.On("Snapshot", mock.Anything, id).Return(&inv, totals, nil)

	svc := newExportService(sessions, nil, nil, nil)
	export, err := svc.Export(context.Background(), id, domain.ExportFormatCSV)
	require.NoError(t, err)

	// Unnumbered drafts fall back to the configured prefix.
	assert.True(t, strings.HasPrefix(export.Filename, "invoice_"))
}

func TestExportService_EmailPDF_Success(t *testing.T) {
	sessions, inv, totals, id := testExportFixture()
	renderer := new(mocks.MockInvoiceRenderer)
	renderer.On("Render", mock.Anything, inv, totals).Return([]byte("%PDF-1.3 fake"), nil)

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" && strings.HasPrefix(in.Key, "exports/"+id.String()+"/")
	})).Return(&port.UploadOutput{Location: "https://test-bucket.s3.amazonaws.com/x"}, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", mock.AnythingOfType("string"), int64(3600)).
		Return("https://signed.example/x", nil)

	email := new(mocks.MockEmailSender)
	email.On("SendInvoiceEmail", mock.Anything, "client@example.com", "Acme", "INV-042", "https://signed.example/x").
		Return(nil)

	svc := newExportService(sessions, renderer, storage, email)
	err := svc.EmailPDF(context.Background(), id, "client@example.com", "Acme")
	require.NoError(t, err)

	storage.AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestExportService_EmailPDF_UploadFailure(t *testing.T) {
	sessions, inv, totals, id := testExportFixture()
	renderer := new(mocks.MockInvoiceRenderer)
	renderer.On("Render", mock.Anything, inv, totals).Return([]byte("%PDF-1.3 fake"), nil)

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, errors.New("connection reset"))

	svc := newExportService(sessions, renderer, storage, new(mocks.MockEmailSender))
	err := svc.EmailPDF(context.Background(), id, "client@example.com", "Acme")
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestExportService_EmailPDF_SendFailure(t *testing.T) {
	sessions, inv, totals, id := testExportFixture()
	renderer := new(mocks.MockInvoiceRenderer)
	renderer.On("Render", mock.Anything, inv, totals).Return([]byte("%PDF-1.3 fake"), nil)

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", mock.AnythingOfType("string"), int64(3600)).
		Return("https://signed.example/x", nil)

	email := new(mocks.MockEmailSender)
	email.On("SendInvoiceEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("ses throttled"))

	svc := newExportService(sessions, renderer, storage, email)
	err := svc.EmailPDF(context.Background(), id, "client@example.com", "Acme")
	assert.ErrorIs(t, err, domain.ErrEmailFailed)
}
