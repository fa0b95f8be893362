package admin

import (
	"fmt"
	"strings"

	"freightline/internal/domain/shipment"
	appErrors "freightline/pkg/errors"
	"freightline/pkg/utils"
)

// ValidateCreate checks a new shipment the way the admin form does: required
// scalars must be non-blank after trimming, checkpoint and image counts must
// sit inside their bounds. The first failing field wins so the operator gets
// one actionable message.
func ValidateCreate(req *CreateShipmentRequest) error {
	required := []struct {
		value string
		label string
	}{
		{req.SenderName, "sender name"},
		{req.SenderPhone, "sender phone"},
		{req.ReceiverName, "receiver name"},
		{req.ReceiverPhone, "receiver phone"},
		{req.ReceiverEmail, "receiver email"},
		{req.PickupLocation, "pickup location"},
		{req.DeliveryAddress, "delivery address"},
		{req.PackageName, "package name"},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return appErrors.NewAppError(
				"VALIDATION_ERROR",
				fmt.Sprintf("%s is required", field.label),
				nil,
			)
		}
	}

	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := validateCheckpoints(req.Checkpoints); err != nil {
		return err
	}

	return validateImages(req.Images)
}

// NonBlankCheckpoints filters the fixed form slots down to the entered
// locations, preserving order.
func NonBlankCheckpoints(slots []string) []string {
	locations := make([]string, 0, len(slots))
	for _, slot := range slots {
		if trimmed := strings.TrimSpace(slot); trimmed != "" {
			locations = append(locations, trimmed)
		}
	}
	return locations
}

func validateCheckpoints(slots []string) error {
	count := len(NonBlankCheckpoints(slots))
	if count < shipment.MinCheckpoints || count > shipment.MaxCheckpoints {
		return appErrors.NewAppError(
			"VALIDATION_ERROR",
			fmt.Sprintf("between %d and %d checkpoints are required, got %d",
				shipment.MinCheckpoints, shipment.MaxCheckpoints, count),
			shipment.ErrCheckpointCount,
		)
	}
	return nil
}

func validateImages(images []string) error {
	if len(images) < shipment.MinImages || len(images) > shipment.MaxImages {
		return appErrors.NewAppError(
			"VALIDATION_ERROR",
			fmt.Sprintf("between %d and %d image URLs are required, got %d",
				shipment.MinImages, shipment.MaxImages, len(images)),
			shipment.ErrImageCount,
		)
	}

	for _, url := range images {
		if !utils.IsValidImageURL(url) {
			return appErrors.NewAppError(
				"VALIDATION_ERROR",
				fmt.Sprintf("image URL %q must start with http:// or https://", url),
				shipment.ErrInvalidImageURL,
			)
		}
	}

	return nil
}

// ValidateUpdate applies the same rules to the fields an edit actually touches.
func ValidateUpdate(req *UpdateShipmentRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.Images != nil {
		return validateImages(*req.Images)
	}

	return nil
}
