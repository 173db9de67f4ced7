package ioprocess

import (
	"context"
	"errors"
	"strconv"

	"github.com/luca-drf/ensembl-metadata/pkg/db"
)

// Genome databases carry their descriptive attributes as key-value rows
// in the meta table, scoped by species id for collection databases.

const qMetaValue = `
SELECT meta_value FROM meta
 WHERE meta_key = $1 AND species_id = $2
 ORDER BY meta_id
 LIMIT 1`

const qMetaValues = `
SELECT meta_value FROM meta
 WHERE meta_key = $1 AND species_id = $2
 ORDER BY meta_id`

// metaValue reads a single-valued meta key. A missing key is not an
// error and yields the empty string.
func metaValue(ctx context.Context, h db.Handle, key string) (string, error) {
	var res string
	err := h.Scalar(ctx, &res, qMetaValue, key, h.SpeciesID())
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return "", nil
		}
		return "", MetaError(h.Name(), key, err)
	}
	return res, nil
}

// metaValues reads a multi-valued meta key in insertion order.
func metaValues(ctx context.Context, h db.Handle, key string) ([]string, error) {
	res, err := h.Strings(ctx, qMetaValues, key, h.SpeciesID())
	if err != nil {
		return nil, MetaError(h.Name(), key, err)
	}
	return res, nil
}

// metaInt reads a single-valued numeric meta key, zero when missing.
func metaInt(ctx context.Context, h db.Handle, key string) (int64, error) {
	s, err := metaValue(ctx, h, key)
	if err != nil || s == "" {
		return 0, err
	}
	res, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, MetaError(h.Name(), key, err)
	}
	return res, nil
}
