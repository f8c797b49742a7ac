package database

const (
	queryGetAllRows = `
		SELECT id, timestamp, cashier, bank, credit
		FROM ledger_rows
		ORDER BY pos`

	queryInsertRow = `
		INSERT INTO ledger_rows (id, timestamp, cashier, bank, credit)
		VALUES (?, ?, ?, ?, ?)`

	queryGetRowIDs = `
		SELECT id
		FROM ledger_rows
		ORDER BY pos`

	queryGetPosByOffset = `
		SELECT pos
		FROM ledger_rows
		ORDER BY pos
		LIMIT 1 OFFSET ?`

	queryDeleteRowByPos = `
		DELETE FROM ledger_rows
		WHERE pos = ?`
)
