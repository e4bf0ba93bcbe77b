package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/cambio/internal/model"
	"github.com/roach88/cambio/internal/sim"
)

// ErrRunNotFound is returned when a run ID is not in the archive.
var ErrRunNotFound = errors.New("run not found")

// RunMeta describes an archived run without its series.
type RunMeta struct {
	ID        string
	CreatedAt string
	StartYear float64
	StopYear  float64
	Dtime     float64
	Steps     int
	Config    string
}

// ListRuns returns all archived runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, start_year, stop_year, dtime, steps, config
		FROM runs
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMeta
	for rows.Next() {
		var m RunMeta
		if err := rows.Scan(&m.ID, &m.CreatedAt, &m.StartYear, &m.StopYear, &m.Dtime, &m.Steps, &m.Config); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the metadata for a single archived run.
func (s *Store) GetRun(ctx context.Context, id string) (RunMeta, error) {
	var m RunMeta
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, start_year, stop_year, dtime, steps, config
		FROM runs WHERE id = ?
	`, id).Scan(&m.ID, &m.CreatedAt, &m.StartYear, &m.StopYear, &m.Dtime, &m.Steps, &m.Config)
	if errors.Is(err, sql.ErrNoRows) {
		return RunMeta{}, fmt.Errorf("get run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return RunMeta{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return m, nil
}

// LoadSeries reassembles the full time series of an archived run in
// step order.
func (s *Store) LoadSeries(ctx context.Context, id string) (*sim.TimeSeries, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT year, c_atm, c_ocean, albedo, t_anomaly,
		       ph, t_c, t_f, f_ha, f_ao, f_oa, f_al, f_la
		FROM samples
		WHERE run_id = ?
		ORDER BY step ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load series %s: %w", id, err)
	}
	defer rows.Close()

	ts := &sim.TimeSeries{}
	for rows.Next() {
		var st model.State
		err := rows.Scan(&st.Year, &st.CAtm, &st.COcean, &st.Albedo, &st.TAnomaly,
			&st.PH, &st.TC, &st.TF, &st.FHa, &st.FAo, &st.FOa, &st.FAl, &st.FLa)
		if err != nil {
			return nil, fmt.Errorf("scan sample of run %s: %w", id, err)
		}
		ts.Append(st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples of run %s: %w", id, err)
	}
	return ts, nil
}
