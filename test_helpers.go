package gitflow

import (
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

// testRepoCreate creates a new in-memory git repository for testing
func testRepoCreate() (*git.Repository, error) {
	storage := memory.NewStorage()
	fs := memfs.New()
	return git.Init(storage, fs)
}

// testRepoCommit adds a file and commits it with the given subject and
// author/committer time
func testRepoCommit(repo *git.Repository, filename, message string, when time.Time) (plumbing.Hash, error) {
	workTree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	err = writeFile(workTree.Filesystem, filename, "content of "+filename)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	_, err = workTree.Add(filename)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	sig := &object.Signature{
		Name:  "test",
		Email: "test@example.com",
		When:  when,
	}
	return workTree.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
}

// testRepoWithHistory builds a repo whose HEAD history is the given commit
// subjects, oldest first, each one minute apart ending at the given time
func testRepoWithHistory(subjects []string, end time.Time) (*git.Repository, error) {
	repo, err := testRepoCreate()
	if err != nil {
		return nil, err
	}

	start := end.Add(-time.Duration(len(subjects)-1) * time.Minute)
	for i, subject := range subjects {
		filename := "file_" + string(rune('a'+i)) + ".txt"
		_, err = testRepoCommit(repo, filename, subject, start.Add(time.Duration(i)*time.Minute))
		if err != nil {
			return nil, err
		}
	}

	return repo, nil
}

// writeFile writes content to a file in the given filesystem
func writeFile(fs billy.Filesystem, filename, content string) error {
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write([]byte(content))
	return err
}

// fixedProbe always answers with the same signal
type fixedProbe MergeSignal

func (p fixedProbe) Detect(BranchCategory, LookbackWindow) MergeSignal {
	return MergeSignal(p)
}
