package server

import (
	"net/http"

	"portfolio/src/notify"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	msgInvalidBody       = "Invalid request body"
	msgAllFieldsRequired = "All fields are required"
	msgEmailRequired     = "Email is required"
	msgInvalidEmail      = "Invalid email format"
	msgEmailSent         = "Email sent successfully"
	msgSubscribed        = "Successfully subscribed to newsletter"
	msgSendFailed        = "Failed to send email. Please try again later."
	msgSubscribeFailed   = "Failed to subscribe. Please try again later."
)

func (a *AppHandler) PostContact(c *gin.Context) {
	var request ContactRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}
	if err := a.validate.Struct(request); err != nil {
		if failedTag(err) == "required" {
			badRequest(c, msgAllFieldsRequired)
		} else {
			badRequest(c, msgInvalidEmail)
		}
		return
	}

	msg, err := a.composer.Contact(request.Name, request.Email, request.Subject, request.Message)
	if err == nil {
		err = a.mailer.Send(c.Request.Context(), msg)
	}
	if err != nil {
		log.Error().Err(err).Str("reply_to", request.Email).Msg("contact email failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgSendFailed})
		return
	}

	log.Info().Str("reply_to", request.Email).Msg("contact email sent")
	success(c, msgEmailSent)
}

func (a *AppHandler) PostNewsletter(c *gin.Context) {
	var request NewsletterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}
	if err := a.validate.Struct(request); err != nil {
		if failedTag(err) == "required" {
			badRequest(c, msgEmailRequired)
		} else {
			badRequest(c, msgInvalidEmail)
		}
		return
	}

	err := a.subscribe(c, request.Email)
	if err != nil {
		log.Error().Err(err).Str("subscriber", request.Email).Msg("newsletter subscription failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgSubscribeFailed})
		return
	}

	log.Info().Str("subscriber", request.Email).Msg("newsletter subscription sent")
	success(c, msgSubscribed)
}

func (a *AppHandler) subscribe(c *gin.Context, email string) error {
	welcome, err := a.composer.Welcome(email)
	if err != nil {
		return err
	}
	notice, err := a.composer.Subscription(email)
	if err != nil {
		return err
	}
	return notify.SendAll(c.Request.Context(), a.mailer, welcome, notice)
}
