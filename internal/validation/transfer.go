package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// ValidTransferType contains the allowed transfer type values.
var ValidTransferType = map[string]bool{
	model.TransferTypeDeposit: true, model.TransferTypeWithdrawal: true,
}

// ValidateCreateTransfer validates a transfer creation request.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: deposit, withdrawal
//   - amount: Must be positive; direction is carried by type
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransfer(req request.CreateTransferRequest) error {
	errors := make(map[string]string)

	validateDate(errors, "date", req.Date)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransferType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}

	return collected(errors)
}
