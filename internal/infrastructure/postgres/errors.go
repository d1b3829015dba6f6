package postgres

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/invoizo-api/internal/domain"
)

// classify traduce errores del driver a domain.TransientError cuando reintentar tiene
// sentido. El resto se devuelve sin tocar.
func classify(op string, err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if pgconn.Timeout(err) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewTransient(domain.TransientTimeout, op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection_exception
			return domain.NewTransient(domain.TransientConnection, op, err)
		case pgErr.Code == "57P01", pgErr.Code == "57P03", pgErr.Code == "53300": // admin_shutdown, cannot_connect_now, too_many_connections
			return domain.NewTransient(domain.TransientUnavailable, op, err)
		}
		return err
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return domain.NewTransient(domain.TransientConnection, op, err)
	}
	return err
}
