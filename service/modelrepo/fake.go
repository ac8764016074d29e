package modelrepo

import "context"

type fakeService struct {
	path string
	err  error
}

// NewFake returns a model repository whose artifacts are always
// available at the given path.
func NewFake(path string) IService {
	return &fakeService{path: path}
}

// NewFakeWithError returns a model repository whose downloads always
// fail with the given error.
func NewFakeWithError(err error) IService {
	return &fakeService{err: err}
}

func (svc *fakeService) Ensure(_ context.Context) (string, error) {
	if svc.err != nil {
		return "", svc.err
	}
	return svc.path, nil
}

func (svc *fakeService) CacheInfo() CacheInfo {
	return CacheInfo{
		Folder: svc.path,
		Exists: svc.err == nil,
	}
}
