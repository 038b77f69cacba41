package server

import (
	"fmt"

	"github.com/safespeak/safespeak/server/contacts"
	"github.com/safespeak/safespeak/server/models"
	"github.com/safespeak/safespeak/server/work"
)

const sqliteBackupHandler = "sqlite_backup"

// deliverContactInvite runs on the worker pool so a slow SMS/email
// provider never holds up the request that created the contact.
func deliverContactInvite(args map[string]interface{}) error {
	return inviteChannel.SendInvite(
		stringArg(args, "name"),
		stringArg(args, "email"),
		stringArg(args, "phone"),
	)
}

func backupSqliteDb(map[string]interface{}) error {
	if storageClient == nil {
		return nil
	}

	dbFilePath, err := models.DatabasePath(dataDir)
	if err != nil {
		return err
	}

	return storageClient.UploadFile(
		serverConfig.Google.Storage.Bucket,
		serverConfig.Google.Storage.Prefix,
		dbFilePath,
	)
}

func registerJobHandlers(wpa *work.WorkerPoolAdapter) {
	fatalOnError(wpa.Register(contacts.ContactInviteHandler, deliverContactInvite))
	fatalOnError(wpa.Register(sqliteBackupHandler, backupSqliteDb))
}

func enqueueJobs(wpa *work.WorkerPoolAdapter) {
	if !serverConfig.Google.Storage.EnableSqliteBackupAndSync {
		return
	}

	err := wpa.PeriodicallyPerform(serverConfig.Google.Storage.SqliteBackupSchedule, work.JobParams{
		Name:    sqliteBackupHandler,
		Handler: sqliteBackupHandler,
		Args:    map[string]interface{}{},
	})
	if err != nil {
		logg.Errorf("unable to schedule periodic database backup: %v", err)
	}
}

func stringArg(args map[string]interface{}, name string) string {
	if args[name] == nil {
		return ""
	}
	return fmt.Sprint(args[name])
}
