package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-mission-sync/models"
)

const documentsTable = "documents"

// getManyChunkSize bounds the ids of one IN (...) lookup.
const getManyChunkSize = 500

var postgresBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var documentColumns = []string{"id", "fields", "created_at", "updated_at"}

// fieldsExpr renders fields as a jsonb expression. Plain values travel as
// one JSON parameter; ServerTimestamp sentinels are resolved by the
// database clock so that client clock skew never reaches the document.
func fieldsExpr(fields map[string]any) (sq.Sqlizer, error) {
	plain := make(map[string]any, len(fields))
	var serverTimeKeys []string
	for k, v := range fields {
		if models.IsServerTimestamp(v) {
			serverTimeKeys = append(serverTimeKeys, k)
			continue
		}
		plain[k] = v
	}

	encoded, err := json.Marshal(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	sort.Strings(serverTimeKeys)

	var sb strings.Builder
	sb.WriteString("?::jsonb")
	args := []any{string(encoded)}
	for _, k := range serverTimeKeys {
		sb.WriteString(" || jsonb_build_object(?::text, to_jsonb(now()))")
		args = append(args, k)
	}

	return sq.Expr(sb.String(), args...), nil
}

func buildGetDocumentQuery(ref models.DocumentRef) (string, []any, error) {
	return postgresBuilder.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"collection": ref.Collection, "id": ref.ID}).
		ToSql()
}

func buildGetDocumentsQuery(collection string, ids []string) (string, []any, error) {
	return postgresBuilder.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"collection": collection}).
		Where(sq.Eq{"id": ids}).
		ToSql()
}

func buildSetDocumentQuery(ref models.DocumentRef, fields map[string]any, opts models.SetOptions) (string, []any, error) {
	expr, err := fieldsExpr(fields)
	if err != nil {
		return "", nil, err
	}

	onConflict := "ON CONFLICT (collection, id) DO UPDATE SET fields = EXCLUDED.fields, updated_at = now()"
	if opts.Merge {
		onConflict = "ON CONFLICT (collection, id) DO UPDATE SET fields = " + documentsTable + ".fields || EXCLUDED.fields, updated_at = now()"
	}

	return postgresBuilder.Insert(documentsTable).
		Columns("collection", "id", "fields").
		Values(ref.Collection, ref.ID, expr).
		Suffix(onConflict).
		ToSql()
}

func buildDeleteDocumentQuery(ref models.DocumentRef) (string, []any, error) {
	return postgresBuilder.Delete(documentsTable).
		Where(sq.Eq{"collection": ref.Collection, "id": ref.ID}).
		ToSql()
}
