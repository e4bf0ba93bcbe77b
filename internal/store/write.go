package store

import (
	"context"
	"fmt"

	"github.com/roach88/cambio/internal/sim"
)

// SaveRun archives a completed run: one row in runs plus every step of
// its time series, written in a single transaction so a crash never
// leaves a run without its samples.
//
// configYAML is the configuration snapshot to store alongside the
// series; re-running it must reproduce the archived deterministic run.
func (s *Store) SaveRun(ctx context.Context, res *sim.Result, configYAML string) error {
	ts := res.Series
	n := ts.Len()
	if n == 0 {
		return fmt.Errorf("save run %s: empty series", res.ID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, start_year, stop_year, dtime, steps, config)
		VALUES (?, ?, ?, ?, ?, ?)
	`, res.ID, ts.Year[0], ts.Year[n-1], yearStep(ts), n, configYAML)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", res.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO samples (run_id, step, year, c_atm, c_ocean, albedo,
		                     t_anomaly, ph, t_c, t_f, f_ha, f_ao, f_oa, f_al, f_la)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		st := ts.At(i)
		_, err := stmt.ExecContext(ctx, res.ID, i,
			st.Year, st.CAtm, st.COcean, st.Albedo,
			st.TAnomaly, st.PH, st.TC, st.TF,
			st.FHa, st.FAo, st.FOa, st.FAl, st.FLa)
		if err != nil {
			return fmt.Errorf("insert sample %d of run %s: %w", i, res.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", res.ID, err)
	}
	return nil
}

func yearStep(ts *sim.TimeSeries) float64 {
	if ts.Len() < 2 {
		return 0
	}
	return ts.Year[1] - ts.Year[0]
}
