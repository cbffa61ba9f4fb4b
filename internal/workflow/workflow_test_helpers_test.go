package workflow

import (
	"errors"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/edvin/edgedomains/internal/activity"
	"github.com/edvin/edgedomains/internal/model"
)

// registerActivities registers activity structs with the test workflow
// environment so that parameter and return types can be deserialized. All
// activities are mocked via OnActivity in the tests.
func registerActivities(env *testsuite.TestWorkflowEnvironment) {
	env.RegisterActivity(&activity.Parameters{})
	env.RegisterActivity(&activity.Certificates{})
	env.RegisterActivity(&activity.Distribution{})
	env.RegisterActivity(&activity.Archive{})
}

var testKeys = model.ParameterKeys{
	DomainNames:    "/dev/domains",
	CertificateARN: "/dev/certificate-arns",
	DistributionID: "/dev/distribution-id",
}

func kindError(kind model.ErrorKind, msg string) error {
	return activity.ApplicationError(model.NewError(kind, "%s", msg))
}

// errorType returns the application error type of a workflow error, or "" if
// it carries none.
func errorType(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Type()
	}
	return ""
}

func list(items ...string) *activity.ListResult {
	return &activity.ListResult{Items: items, Found: true}
}

func cert(arn, status string, validations ...model.DomainValidation) *model.Certificate {
	c := &model.Certificate{ARN: arn, Status: status, DomainValidations: validations}
	for _, v := range validations {
		c.SubjectAlternativeNames = append(c.SubjectAlternativeNames, v.DomainName)
	}
	return c
}

func dnsValidation(domain, status string, record *model.ResourceRecord) model.DomainValidation {
	return model.DomainValidation{
		DomainName:       domain,
		ValidationMethod: model.ValidationMethodDNS,
		ValidationStatus: status,
		ResourceRecord:   record,
	}
}
