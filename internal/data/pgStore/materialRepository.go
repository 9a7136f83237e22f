package pgStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/uptrace/bun"
)

type materialRow struct {
	bun.BaseModel `bun:"table:materials,alias:m"`

	Id         string    `bun:"id,pk,type:text"`
	CourseId   string    `bun:"course_id,notnull,type:text"`
	UploaderId string    `bun:"uploader_id,nullzero"`
	Title      string    `bun:"title,notnull"`
	FileUrl    string    `bun:"file_url,notnull"`
	ObjectKey  string    `bun:"object_key,notnull"`
	FileType   string    `bun:"file_type,notnull"`
	Kind       string    `bun:"kind,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func toRow(m commonModels.Material) *materialRow {
	return &materialRow{
		Id:         m.Id,
		CourseId:   m.CourseId,
		UploaderId: m.UploaderId,
		Title:      m.Title,
		FileUrl:    m.FileUrl,
		ObjectKey:  m.ObjectKey,
		FileType:   m.FileType,
		Kind:       string(m.Kind),
		CreatedAt:  m.CreatedAt,
	}
}

func (r *materialRow) toMaterial() commonModels.Material {
	return commonModels.Material{
		Id:         r.Id,
		CourseId:   r.CourseId,
		UploaderId: r.UploaderId,
		Title:      r.Title,
		FileUrl:    r.FileUrl,
		ObjectKey:  r.ObjectKey,
		FileType:   r.FileType,
		Kind:       commonModels.DocKind(r.Kind),
		CreatedAt:  r.CreatedAt,
	}
}

// MaterialRepository stores material rows in the materials table.
type MaterialRepository struct {
	db *bun.DB
}

func NewMaterialRepository(db *bun.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().Model((*materialRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create materials table: %w", err)
	}
	_, err := r.db.NewCreateIndex().
		Model((*materialRow)(nil)).
		Index("materials_course_id_idx").
		Column("course_id").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create materials index: %w", err)
	}
	return nil
}

func (r *MaterialRepository) CreateMaterial(ctx context.Context, material commonModels.Material) error {
	_, err := r.db.NewInsert().Model(toRow(material)).Exec(ctx)
	return err
}

func (r *MaterialRepository) GetMaterial(ctx context.Context, materialId string) (commonModels.Material, error) {
	row := new(materialRow)
	err := r.db.NewSelect().Model(row).Where("m.id = ?", materialId).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return commonModels.Material{}, commonModels.ErrNotFound
	}
	if err != nil {
		return commonModels.Material{}, err
	}
	return row.toMaterial(), nil
}

func (r *MaterialRepository) ListMaterials(ctx context.Context, courseId string) ([]commonModels.Material, error) {
	var rows []materialRow
	err := r.db.NewSelect().
		Model(&rows).
		Where("m.course_id = ?", courseId).
		Order("m.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]commonModels.Material, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toMaterial())
	}
	return result, nil
}

// DeleteMaterial removes the row; material_embeddings rows follow through ON DELETE CASCADE.
func (r *MaterialRepository) DeleteMaterial(ctx context.Context, materialId string) error {
	res, err := r.db.NewDelete().Model((*materialRow)(nil)).Where("id = ?", materialId).Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return commonModels.ErrNotFound
	}
	return nil
}
