package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/edvin/edgedomains/internal/activity"
	"github.com/edvin/edgedomains/internal/model"
)

type ReconcileDistributionWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
	env *testsuite.TestWorkflowEnvironment
}

func (s *ReconcileDistributionWorkflowTestSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	registerActivities(s.env)
}

func (s *ReconcileDistributionWorkflowTestSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

func (s *ReconcileDistributionWorkflowTestSuite) expectDistribution() {
	s.env.OnActivity("ReadParameter", mock.Anything, "/dev/distribution-id").Return("EDIST", nil)
	s.env.OnActivity("GetDistribution", mock.Anything, "EDIST").
		Return(&model.Distribution{ID: "EDIST", DomainName: "d111.cloudfront.net", Aliases: []string{"a.co"}, ETag: "E1"}, nil)
}

func (s *ReconcileDistributionWorkflowTestSuite) TestIssuedCertificateUpdatesDistribution() {
	s.expectDistribution()
	s.env.OnActivity("ReadList", mock.Anything, activity.ReadListParams{Name: "/dev/certificate-arns"}).
		Return(list("arn:new", "arn:old"), nil)
	s.env.OnActivity("DescribeCertificate", mock.Anything, "arn:new").
		Return(cert("arn:new", model.CertStatusIssued,
			dnsValidation("a.co", model.ValidationStatusSuccess, nil),
			dnsValidation("b.co", model.ValidationStatusSuccess, nil),
		), nil)
	s.env.OnActivity("ReadList", mock.Anything, activity.ReadListParams{Name: "/dev/domains"}).
		Return(list("a.co", "b.co"), nil)
	s.env.OnActivity("UpdateDistributionBinding", mock.Anything, model.DistributionBinding{
		DistributionID: "EDIST",
		CertificateARN: "arn:new",
		Aliases:        []string{"a.co", "b.co"},
		ETag:           "E1",
	}).Return(nil).Once()

	s.env.ExecuteWorkflow(ReconcileDistributionWorkflow, ReconcileParams{Keys: testKeys})
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result model.ReconcileResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal("EDIST", result.DistributionID)
	s.Equal([]string{"a.co", "b.co"}, result.Aliases)
}

func (s *ReconcileDistributionWorkflowTestSuite) TestPendingCertificateListsDomainsAndDoesNotWrite() {
	s.expectDistribution()
	s.env.OnActivity("ReadList", mock.Anything, activity.ReadListParams{Name: "/dev/certificate-arns"}).
		Return(list("arn:new"), nil)
	s.env.OnActivity("DescribeCertificate", mock.Anything, "arn:new").
		Return(cert("arn:new", model.CertStatusPendingValidation,
			dnsValidation("a.co", model.ValidationStatusSuccess, nil),
			dnsValidation("b.co", model.ValidationStatusPending, nil),
		), nil)

	s.env.ExecuteWorkflow(ReconcileDistributionWorkflow, ReconcileParams{Keys: testKeys})
	s.True(s.env.IsWorkflowCompleted())

	err := s.env.GetWorkflowError()
	s.Error(err)
	var appErr *temporal.ApplicationError
	s.True(errors.As(err, &appErr))
	s.Equal(string(model.ErrBadRequest), appErr.Type())
	s.Contains(appErr.Message(), "b.co")

	var pending []string
	s.NoError(appErr.Details(&pending))
	s.Equal([]string{"b.co"}, pending)

	s.env.AssertActivityNotCalled(s.T(), "UpdateDistributionBinding", mock.Anything, mock.Anything)
}

func (s *ReconcileDistributionWorkflowTestSuite) TestFailedCertificateAsksForReRegistration() {
	s.expectDistribution()
	s.env.OnActivity("ReadList", mock.Anything, activity.ReadListParams{Name: "/dev/certificate-arns"}).
		Return(list("arn:new"), nil)
	s.env.OnActivity("DescribeCertificate", mock.Anything, "arn:new").
		Return(cert("arn:new", model.CertStatusFailed), nil)

	s.env.ExecuteWorkflow(ReconcileDistributionWorkflow, ReconcileParams{Keys: testKeys})
	s.True(s.env.IsWorkflowCompleted())

	err := s.env.GetWorkflowError()
	s.Equal(string(model.ErrBadRequest), errorType(err))
	s.Contains(err.Error(), "register a domain again")
}

func (s *ReconcileDistributionWorkflowTestSuite) TestNoTrackedCertificatesIsInvalidState() {
	s.expectDistribution()
	s.env.OnActivity("ReadList", mock.Anything, activity.ReadListParams{Name: "/dev/certificate-arns"}).
		Return(&activity.ListResult{}, nil)

	s.env.ExecuteWorkflow(ReconcileDistributionWorkflow, ReconcileParams{Keys: testKeys})
	s.True(s.env.IsWorkflowCompleted())
	s.Equal(string(model.ErrInvalidState), errorType(s.env.GetWorkflowError()))
}

func (s *ReconcileDistributionWorkflowTestSuite) TestMissingDistributionIsNotFound() {
	s.env.OnActivity("ReadParameter", mock.Anything, "/dev/distribution-id").Return("EDIST", nil)
	s.env.OnActivity("GetDistribution", mock.Anything, "EDIST").
		Return(nil, kindError(model.ErrNotFound, "distribution EDIST not found"))

	s.env.ExecuteWorkflow(ReconcileDistributionWorkflow, ReconcileParams{Keys: testKeys})
	s.True(s.env.IsWorkflowCompleted())
	s.Equal(string(model.ErrNotFound), errorType(s.env.GetWorkflowError()))
}

func (s *ReconcileDistributionWorkflowTestSuite) TestStaleTokenIsNotRetried() {
	s.expectDistribution()
	s.env.OnActivity("ReadList", mock.Anything, activity.ReadListParams{Name: "/dev/certificate-arns"}).
		Return(list("arn:new"), nil)
	s.env.OnActivity("DescribeCertificate", mock.Anything, "arn:new").
		Return(cert("arn:new", model.CertStatusIssued), nil)
	s.env.OnActivity("ReadList", mock.Anything, activity.ReadListParams{Name: "/dev/domains"}).
		Return(list("a.co"), nil)
	s.env.OnActivity("UpdateDistributionBinding", mock.Anything, mock.Anything).
		Return(kindError(model.ErrConflict, "distribution EDIST changed since it was read")).Once()

	s.env.ExecuteWorkflow(ReconcileDistributionWorkflow, ReconcileParams{Keys: testKeys})
	s.True(s.env.IsWorkflowCompleted())
	s.Equal(string(model.ErrConflict), errorType(s.env.GetWorkflowError()))
	s.env.AssertActivityNumberOfCalls(s.T(), "GetDistribution", 1)
}

func TestReconcileDistributionWorkflow(t *testing.T) {
	suite.Run(t, new(ReconcileDistributionWorkflowTestSuite))
}
