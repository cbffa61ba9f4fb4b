package activity

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/edvin/edgedomains/internal/model"
)

type fakeStore struct {
	values map[string]string
	lists  map[string][]string
	err    error
	writes map[string][]string
}

func (f *fakeStore) Get(_ context.Context, name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.values[name]
	if !ok {
		return "", model.NewError(model.ErrNotFound, "parameter %s not found", name)
	}
	return v, nil
}

func (f *fakeStore) GetList(_ context.Context, name string) ([]string, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	items, ok := f.lists[name]
	return items, ok, nil
}

func (f *fakeStore) PutList(_ context.Context, name string, items []string) error {
	if f.err != nil {
		return f.err
	}
	if f.writes == nil {
		f.writes = map[string][]string{}
	}
	f.writes[name] = items
	return nil
}

type fakeAuthority struct {
	arn      string
	err      error
	requests []model.CertificateRequest
	tokens   []string
	certs    map[string]*model.Certificate
	listed   []model.CertificateSummary
	deleted  []string
}

func (f *fakeAuthority) RequestCertificate(_ context.Context, req model.CertificateRequest, token string) (string, error) {
	f.requests = append(f.requests, req)
	f.tokens = append(f.tokens, token)
	return f.arn, f.err
}

func (f *fakeAuthority) DescribeCertificate(_ context.Context, arn string) (*model.Certificate, error) {
	cert, ok := f.certs[arn]
	if !ok {
		return nil, model.NewError(model.ErrNotFound, "certificate %s not found", arn)
	}
	return cert, nil
}

func (f *fakeAuthority) ListCertificates(_ context.Context, _ ...string) ([]model.CertificateSummary, error) {
	return f.listed, f.err
}

func (f *fakeAuthority) DeleteCertificate(_ context.Context, arn string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, arn)
	return nil
}

type fakeEdge struct {
	distribution *model.Distribution
	updateErr    error
	bindings     []model.DistributionBinding
}

func (f *fakeEdge) GetDistribution(_ context.Context, id string) (*model.Distribution, error) {
	if f.distribution == nil {
		return nil, model.NewError(model.ErrNotFound, "distribution %s not found", id)
	}
	return f.distribution, nil
}

func (f *fakeEdge) UpdateBinding(_ context.Context, b model.DistributionBinding) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.bindings = append(f.bindings, b)
	return nil
}

type fakeS3 struct {
	puts []s3.PutObjectInput
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, *in)
	return &s3.PutObjectOutput{}, nil
}
