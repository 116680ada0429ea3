package common

import (
	"weddingWager/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StartingBalance is granted to every new account. Overridable via the
// STARTING_BALANCE environment variable at boot.
var StartingBalance int64 = 1000

// EnsureUser fetches the account for an external identity, bootstrapping it
// with the starting balance on first sight.
func EnsureUser(db *gorm.DB, externalID, nickname string) (models.User, error) {
	var user models.User
	result := db.FirstOrCreate(&user, models.User{ExternalID: externalID})
	if result.Error != nil {
		return user, result.Error
	}
	if result.RowsAffected == 1 {
		user.Balance = StartingBalance
		if nickname != "" {
			user.Nickname = nickname
		}
		if err := db.Save(&user).Error; err != nil {
			return user, err
		}
		return user, nil
	}
	if nickname != "" && user.Nickname != nickname {
		user.Nickname = nickname
		if err := db.Model(&user).Update("nickname", nickname).Error; err != nil {
			return user, err
		}
	}
	return user, nil
}

// LogError records an operational failure both to the log and the error_logs
// table so failed cascades are visible after the fact.
func LogError(db *gorm.DB, log *logrus.Logger, scope string, err error) {
	if err == nil {
		return
	}
	log.WithField("scope", scope).Error(err)
	db.Create(&models.ErrorLog{Scope: scope, Message: err.Error()})
}
