package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"rfm-analysis/pkg/models"

	_ "github.com/go-sql-driver/mysql"
)

// Open DSN mariadb:// ou mysql:// → format MySQL driver
func Open(dsn string) (*sql.DB, string, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, mysqlDSN, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", fmt.Errorf("dsn incomplet (user/host/db)")
		}
		// parseTime pour des dates natives, UTC pour des récences stables
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return dsn, nil
}

var identRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// LoadTransactions lit les trois colonnes mappées de la table SQL et retourne
// une table brute typée (identifiants en chaînes, dates natives DATETIME-safe,
// montants float64) prête pour la normalisation. Les NULL SQL deviennent des
// cellules nulles, écartées ensuite par le pipeline.
func LoadTransactions(ctx context.Context, db *sql.DB, table, userCol, dateCol, valueCol string) (models.RawTable, error) {
	for _, ident := range []string{table, userCol, dateCol, valueCol} {
		if !identRe.MatchString(ident) {
			return models.RawTable{}, fmt.Errorf("identifiant invalide: %q", ident)
		}
	}

	q := fmt.Sprintf(`SELECT %s, %s, %s FROM %s`, userCol, dateCol, valueCol, table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	out := models.RawTable{Columns: []string{models.ColUserID, models.ColDate, models.ColValue}}
	count := 0
	for rows.Next() {
		var (
			userID sql.NullString
			date   sql.NullTime
			value  sql.NullFloat64
		)
		if err := rows.Scan(&userID, &date, &value); err != nil {
			return models.RawTable{}, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make([]any, 3)
		if userID.Valid {
			row[0] = userID.String
		}
		if date.Valid {
			row[1] = date.Time
		}
		if value.Valid {
			row[2] = value.Float64
		}
		out.Rows = append(out.Rows, row)
		count++
	}
	if err := rows.Err(); err != nil {
		return models.RawTable{}, err
	}
	log.Printf("[DEBUG] table=%s lignes lues=%d", table, count)
	return out, nil
}
