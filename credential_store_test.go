package accounts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHasher struct {
	BcryptAuthenticator
	compared []string
}

func (c *countingHasher) ComparePasswordAndHash(password, hash string) error {
	c.compared = append(c.compared, hash)
	return c.BcryptAuthenticator.ComparePasswordAndHash(password, hash)
}

func TestCredentialStoreVerify(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	newStore := func(hasher PasswordAuthenticator) *BunCredentialStore {
		return &BunCredentialStore{
			hasher:   hasher,
			fallback: RandomPasswordHash(),
			logger:   defLogger{},
		}
	}

	t.Run("matching password succeeds", func(t *testing.T) {
		store := newStore(BcryptAuthenticator{})

		outcome, err := store.verify(&Account{PasswordHash: hash}, "password123")

		assert.NoError(t, err)
		assert.True(t, outcome.Succeeded)
	})

	t.Run("wrong password declines", func(t *testing.T) {
		store := newStore(BcryptAuthenticator{})

		outcome, err := store.verify(&Account{PasswordHash: hash}, "wrong-password")

		assert.NoError(t, err)
		assert.False(t, outcome.Succeeded)
	})

	t.Run("unknown account declines after burning a comparison", func(t *testing.T) {
		hasher := &countingHasher{}
		store := newStore(hasher)

		outcome, err := store.verify(nil, "password123")

		assert.NoError(t, err)
		assert.False(t, outcome.Succeeded)
		require.Len(t, hasher.compared, 1)
		assert.Equal(t, store.fallback, hasher.compared[0])
	})

	t.Run("undecodable stored hash is a fault", func(t *testing.T) {
		store := newStore(BcryptAuthenticator{})

		_, err := store.verify(&Account{PasswordHash: "not-a-bcrypt-hash"}, "password123")

		assert.Error(t, err)
	})

	t.Run("injected hasher handles both hashing and comparison", func(t *testing.T) {
		hasher := &countingHasher{}
		store := newStore(hasher)

		outcome, err := store.verify(&Account{PasswordHash: hash}, "password123")

		assert.NoError(t, err)
		assert.True(t, outcome.Succeeded)
		assert.Len(t, hasher.compared, 1)
	})
}

func TestWithPasswordAuthenticator(t *testing.T) {
	store := &BunCredentialStore{hasher: BcryptAuthenticator{}}

	hasher := &countingHasher{}
	store.WithPasswordAuthenticator(hasher)
	assert.Equal(t, PasswordAuthenticator(hasher), store.hasher)

	store.WithPasswordAuthenticator(nil)
	assert.Equal(t, PasswordAuthenticator(hasher), store.hasher)
}

func TestBcryptAuthenticator(t *testing.T) {
	hasher := BcryptAuthenticator{}

	hash, err := hasher.HashPassword("password123")
	require.NoError(t, err)

	assert.NoError(t, hasher.ComparePasswordAndHash("password123", hash))
	assert.True(t, errors.Is(hasher.ComparePasswordAndHash("wrong", hash), ErrMismatchedHashAndPassword))
}
