package models

import (
	"fmt"

	"gorm.io/gorm"
)

// NoSelfFollow names the rule rejecting follower_id = followed_id. Violations
// surface as an error whose text contains "check constraint" and this name.
const NoSelfFollow = "follows_no_self"

// noSelfFollowDDL returns the statements installing NoSelfFollow for dialect.
// MySQL refuses a CHECK on columns with cascading foreign keys, and SQLite
// cannot add one to an existing table, so both use a BEFORE INSERT trigger.
func noSelfFollowDDL(dialect string) ([]string, error) {
	switch dialect {
	case "postgres":
		return []string{
			"ALTER TABLE follows ADD CONSTRAINT " + NoSelfFollow + " CHECK (follower_id <> followed_id)",
		}, nil
	case "mysql":
		return []string{
			"CREATE TRIGGER " + NoSelfFollow + " BEFORE INSERT ON follows FOR EACH ROW " +
				"BEGIN IF NEW.follower_id = NEW.followed_id THEN " +
				"SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'check constraint " + NoSelfFollow + " violated'; " +
				"END IF; END",
		}, nil
	case "sqlite":
		return []string{
			"CREATE TRIGGER IF NOT EXISTS " + NoSelfFollow + " BEFORE INSERT ON follows " +
				"WHEN NEW.follower_id = NEW.followed_id " +
				"BEGIN SELECT RAISE(ABORT, 'CHECK constraint failed: " + NoSelfFollow + "'); END",
		}, nil
	}
	return nil, fmt.Errorf("no self-follow rule for dialect %q", dialect)
}

// hasNoSelfFollow reports whether the rule is already installed.
func hasNoSelfFollow(db *gorm.DB) (bool, error) {
	var n int64
	var err error
	switch db.Dialector.Name() {
	case "postgres":
		return db.Migrator().HasConstraint(&Follow{}, NoSelfFollow), nil
	case "mysql":
		err = db.Raw("SELECT COUNT(*) FROM information_schema.triggers WHERE trigger_schema = DATABASE() AND trigger_name = ?",
			NoSelfFollow).Scan(&n).Error
	default:
		// sqlite creates the trigger with IF NOT EXISTS
		return false, nil
	}
	return n > 0, err
}

func installNoSelfFollow(db *gorm.DB) error {
	ok, err := hasNoSelfFollow(db)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", NoSelfFollow, err)
	}
	if ok {
		return nil
	}
	stmts, err := noSelfFollowDDL(db.Dialector.Name())
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("install %s: %w", NoSelfFollow, err)
		}
	}
	return nil
}
