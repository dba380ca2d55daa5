package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-extractor/constants"
	"github.com/joseph-ayodele/doc-extractor/internal/common"
	"github.com/joseph-ayodele/doc-extractor/internal/entity"
)

// DocumentRepository is the durable store for document records. The
// orchestrator is the only caller of the Mark* transitions.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	List(ctx context.Context) ([]entity.Document, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, text string, tables []entity.Table, meta entity.Metadata) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentRepo struct {
	db  *DB
	log *slog.Logger
}

func NewDocumentRepository(db *DB, log *slog.Logger) DocumentRepository {
	if log == nil {
		log = slog.Default()
	}
	return &documentRepo{db: db, log: log}
}

const documentColumns = `id, filename, storage_path, file_type, size_bytes, processing_status,
	extracted_text, extracted_tables, page_count, extraction_confidence, processed_pages,
	extraction_date, error_message, uploaded_at`

func (r *documentRepo) Create(ctx context.Context, doc *entity.Document) error {
	tablesJSON, err := json.Marshal(emptyIfNilTables(doc.ExtractedTables))
	if err != nil {
		return err
	}
	pagesJSON, err := json.Marshal(emptyIfNilPages(doc.Metadata.ProcessedPages))
	if err != nil {
		return err
	}

	q := r.db.Rebind(`
		INSERT INTO documents (` + documentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, q,
		doc.ID.String(), doc.Filename, doc.StoragePath, string(doc.FileType), doc.SizeBytes,
		string(doc.ProcessingStatus), doc.ExtractedText, string(tablesJSON),
		doc.Metadata.PageCount, doc.Metadata.ExtractionConfidence, string(pagesJSON),
		nullTime(doc.Metadata.ExtractionDate), nullString(doc.ErrorMessage), doc.UploadedAt,
	)
	if err != nil {
		r.log.Error("document insert failed", "document_id", doc.ID, "error", err)
		return err
	}
	r.log.Info("document record created", "document_id", doc.ID, "file_type", doc.FileType, "status", doc.ProcessingStatus)
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	q := r.db.Rebind(`SELECT ` + documentColumns + ` FROM documents WHERE id = ?`)
	doc, err := scanDocument(r.db.QueryRowContext(ctx, q, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	return doc, err
}

func (r *documentRepo) List(ctx context.Context) ([]entity.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents ORDER BY uploaded_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, rows.Err()
}

func (r *documentRepo) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	q := r.db.Rebind(`UPDATE documents SET processing_status = ? WHERE id = ?`)
	return r.exec(ctx, id, q, string(constants.StatusProcessing), id.String())
}

func (r *documentRepo) MarkCompleted(ctx context.Context, id uuid.UUID, text string, tables []entity.Table, meta entity.Metadata) error {
	tablesJSON, err := json.Marshal(emptyIfNilTables(tables))
	if err != nil {
		return err
	}
	pagesJSON, err := json.Marshal(emptyIfNilPages(meta.ProcessedPages))
	if err != nil {
		return err
	}

	q := r.db.Rebind(`
		UPDATE documents SET
			processing_status = ?, extracted_text = ?, extracted_tables = ?,
			page_count = ?, extraction_confidence = ?, processed_pages = ?,
			extraction_date = ?, error_message = NULL
		WHERE id = ?`)
	err = r.exec(ctx, id, q,
		string(constants.StatusCompleted), text, string(tablesJSON),
		meta.PageCount, meta.ExtractionConfidence, string(pagesJSON),
		nullTime(meta.ExtractionDate), id.String(),
	)
	if err != nil {
		return err
	}
	r.log.Info("document completed", "document_id", id, "pages", meta.PageCount, "tables", len(tables))
	return nil
}

func (r *documentRepo) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	q := r.db.Rebind(`
		UPDATE documents SET processing_status = ?, error_message = ? WHERE id = ?`)
	err := r.exec(ctx, id, q, string(constants.StatusFailed), message, id.String())
	if err != nil {
		return err
	}
	r.log.Warn("document failed", "document_id", id, "error", message)
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := r.db.Rebind(`DELETE FROM documents WHERE id = ?`)
	return r.exec(ctx, id, q, id.String())
}

func (r *documentRepo) exec(ctx context.Context, id uuid.UUID, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.Error("document update failed", "document_id", id, "error", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var (
		doc        entity.Document
		idStr      string
		fileType   string
		status     string
		tablesJSON string
		pagesJSON  string
		extDate    sql.NullTime
		errMsg     sql.NullString
	)
	err := row.Scan(
		&idStr, &doc.Filename, &doc.StoragePath, &fileType, &doc.SizeBytes, &status,
		&doc.ExtractedText, &tablesJSON, &doc.Metadata.PageCount,
		&doc.Metadata.ExtractionConfidence, &pagesJSON, &extDate, &errMsg, &doc.UploadedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("bad document id %q: %w", idStr, err)
	}
	doc.FileType = constants.FileFormat(fileType)
	doc.ProcessingStatus = constants.ProcessingStatus(status)
	if err := json.Unmarshal([]byte(tablesJSON), &doc.ExtractedTables); err != nil {
		return nil, fmt.Errorf("bad extracted_tables for %s: %w", idStr, err)
	}
	if err := json.Unmarshal([]byte(pagesJSON), &doc.Metadata.ProcessedPages); err != nil {
		return nil, fmt.Errorf("bad processed_pages for %s: %w", idStr, err)
	}
	if extDate.Valid {
		t := extDate.Time
		doc.Metadata.ExtractionDate = &t
	}
	if errMsg.Valid {
		doc.ErrorMessage = &errMsg.String
	}
	return &doc, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func emptyIfNilTables(t []entity.Table) []entity.Table {
	if t == nil {
		return []entity.Table{}
	}
	return t
}

func emptyIfNilPages(p []int) []int {
	if p == nil {
		return []int{}
	}
	return p
}
