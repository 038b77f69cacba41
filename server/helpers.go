package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/golang-jwt/jwt"
	"github.com/gorilla/mux"

	"github.com/safespeak/safespeak/server/auth"
	"github.com/safespeak/safespeak/server/models"
	"github.com/safespeak/safespeak/server/work"
	"github.com/safespeak/safespeak/utils"
)

const authTokenLifetime = 7 * 24 * time.Hour

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad ResponsePayload, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(payLoad.Errors)
	} else if statusCode >= http.StatusBadRequest {
		logg.Info(payLoad.Errors)
	}

	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(payLoad)
}

func removeUnknownFields(args map[string]interface{}, validFields map[string]bool) {
	for key := range args {
		if !validFields[key] {
			delete(args, key)
		}
	}
}

func jwtStandardClaims(subject string) jwt.StandardClaims {
	return jwt.StandardClaims{
		Subject:   subject,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(authTokenLifetime).Unix(),
	}
}

func RegisterValidators(validate *validator.Validate) error {
	return validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		// reject whitespace in passwords
		err := validate.Var(fl.Field().String(), "contains= ")
		if err == nil {
			return false
		}
		return len(fl.Field().String()) > 0
	})
}

// ---------------------------------------------------------------------------------//
// Middleware Helper functions
// --------------------------------------------------------------------------------//

func decodeAndVerifyAuthHeader(authHeaderValue string) DecodedJWT {
	authHeaderList := strings.Split(authHeaderValue, "Bearer ")
	if len(authHeaderList) < 2 {
		return DecodedJWT{ErrorMsg: "no token provided"}
	}

	tokenClaims, err := auth.DecodeJWT(authHeaderList[1], authKeyPair)
	if err != nil {
		return DecodedJWT{ErrorMsg: "invalid token provided"}
	}

	// validate that the user account still exists
	_, err = models.FindUserBy("id", tokenClaims.Subject)
	if err != nil {
		return DecodedJWT{ErrorMsg: "invalid token provided"}
	}

	return DecodedJWT{Claims: tokenClaims}
}

// client is only able to update/view their own records unless client
// is an admin, who may GET/DELETE user resources but never touch
// another user's contacts or sos routes
func canAccessUserResource(r *http.Request, userClaims *auth.SafespeakTokenClaims) bool {
	allowedMethodsForAdmins := map[string]bool{"GET": true, "DELETE": true}
	deniedPathsForAdmin := []string{"/contacts", "/sos"}

	if mux.Vars(r)["uid"] == userClaims.Subject {
		return true
	}

	if !userClaims.IsAdmin {
		return false
	}

	if !allowedMethodsForAdmins[r.Method] {
		return false
	}

	for _, deniedPath := range deniedPathsForAdmin {
		if strings.Contains(r.URL.Path, deniedPath) {
			return false
		}
	}

	return true
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Safespeak server is listening on port:%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(workerPool *work.WorkerPoolAdapter, server *http.Server, backupDb bool) {
	workerPool.Stop()

	if backupDb {
		if err := backupSqliteDb(nil); err != nil {
			logg.Errorf("final database backup failed: %v", err)
		}
	}

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Safespeak server shutdown failed:%+s", err)
	}

	logg.Infof("Safespeak server stopped properly")
}

// dataDirectory retrieves the directory holding the sqlite database,
// or logs an error message and exits if it's unable to.
func dataDirectory(devMode bool) string {
	// Use 'safespeak' folder in home directory for prod
	dataFolderName := "safespeak"
	rootDir, err := os.UserHomeDir()
	fatalOnError(err)

	// Use 'dev' folder in current directory for dev mode
	if devMode {
		dataFolderName = "dev"
		rootDir, err = os.Getwd()
		fatalOnError(err)
	}

	dataDir := filepath.Join(rootDir, dataFolderName)

	err = utils.CreateDirIfNotExist(dataDir)
	fatalOnError(err)

	return dataDir
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
